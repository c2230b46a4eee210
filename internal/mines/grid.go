package mines

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type CellState int8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

type Cell struct {
	Mine     bool
	Adjacent int
	State    CellState
}

// Mark is what the player is allowed to see of a cell.
type Mark int8

const (
	Unknown Mark = -2
	Flag    Mark = -1
	// 0-8 for an opened cell with the given number of mined neighbours
	Mine Mark = 64
)

func (m Mark) String() string {
	switch {
	case m == Unknown:
		return "-"
	case m == Flag:
		return "F"
	case m == Mine:
		return "*"
	case 0 <= m && m <= 8:
		return strconv.Itoa(int(m))
	default:
		return "!"
	}
}

type Outcome int8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Grid is a square minefield together with the player's progress on it.
// Cells are stored row-major.
type Grid struct {
	id         uuid.UUID
	size       int
	mineCount  int
	cells      []Cell
	unrevealed int
	clicks     int
	sessions   int
	detonated  bool
	createdAt  time.Time
}

func ValidateParams(size, mineCount int) error {
	if size < 2 {
		return fmt.Errorf("%w: size %d is below 2", ErrInvalidConfig, size)
	}
	if mineCount < 1 || mineCount > size*size-1 {
		return fmt.Errorf(
			"%w: mine count %d is outside [1, %d]",
			ErrInvalidConfig, mineCount, size*size-1,
		)
	}
	return nil
}

func newGrid(size, mineCount int) *Grid {
	return &Grid{
		id:         uuid.New(),
		size:       size,
		mineCount:  mineCount,
		cells:      make([]Cell, size*size),
		unrevealed: size * size,
		createdAt:  time.Now(),
	}
}

func (g *Grid) ID() uuid.UUID        { return g.id }
func (g *Grid) Size() int            { return g.size }
func (g *Grid) MineCount() int       { return g.mineCount }
func (g *Grid) Unrevealed() int      { return g.unrevealed }
func (g *Grid) Clicks() int          { return g.clicks }
func (g *Grid) Sessions() int        { return g.sessions }
func (g *Grid) CreatedAt() time.Time { return g.createdAt }

func (g *Grid) InBounds(row, col int) bool {
	return 0 <= row && row < g.size && 0 <= col && col < g.size
}

func (g *Grid) index(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return -1, fmt.Errorf(
			"%w: (%d, %d) on a %dx%d grid",
			ErrInvalidCoordinate, row, col, g.size, g.size,
		)
	}
	return row*g.size + col, nil
}

// Cell returns a copy of the cell at row, col.
func (g *Grid) Cell(row, col int) (Cell, error) {
	i, err := g.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

func (g *Grid) Outcome() Outcome {
	switch {
	case g.detonated:
		return Lost
	case g.unrevealed == g.mineCount:
		return Won
	default:
		return Playing
	}
}

// Mark returns the display state of a cell. Out-of-range coordinates read as
// [Unknown].
func (g *Grid) Mark(row, col int) Mark {
	i, err := g.index(row, col)
	if err != nil {
		return Unknown
	}
	c := g.cells[i]
	switch {
	case c.State == Flagged:
		return Flag
	case c.State == Hidden:
		return Unknown
	case c.Mine:
		return Mine
	default:
		return Mark(c.Adjacent)
	}
}

// neighbours calls fn for the index of every cell touching i.
func (g *Grid) neighbours(i int, fn func(j int)) {
	x, y := i%g.size, i/g.size
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < g.size && yy >= 0 && yy < g.size {
				fn(yy*g.size + xx)
			}
		}
	}
}

func (g *Grid) countAdjacent() {
	for i := range g.cells {
		n := 0
		g.neighbours(i, func(j int) {
			if g.cells[j].Mine {
				n++
			}
		})
		g.cells[i].Adjacent = n
	}
}
