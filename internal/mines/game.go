package mines

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func logFields(g *Grid) logrus.Fields {
	return logrus.Fields{
		"id":         g.id.String(),
		"size":       g.size,
		"mineCount":  g.mineCount,
		"unrevealed": g.unrevealed,
		"clicks":     g.clicks,
		"sessions":   g.sessions,
	}
}

// Reveal applies a player move to the cell at row, col. With wantFlag the
// cell's flag is toggled; otherwise the cell is opened, cascading through
// cells with no mined neighbours. hitMine reports whether a mine was opened.
func (g *Grid) Reveal(row, col int, wantFlag bool) (hitMine bool, err error) {
	defer func() {
		var ae AssertionError
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				hitMine, err = false, ae
				return
			}
			panic(r)
		}
	}()

	i, err := g.index(row, col)
	if err != nil {
		return false, err
	}
	if g.Outcome() != Playing {
		return false, ErrGameOver
	}

	if wantFlag {
		g.toggleFlag(i)
		return false, nil
	}

	hitMine = g.open(i, false)

	switch g.Outcome() {
	case Lost:
		g.sessions++
		Log.WithFields(logFields(g)).Debug("mine hit")
	case Won:
		g.sessions++
		Log.WithFields(logFields(g)).Debug("grid cleared")
	}
	return hitMine, nil
}

func (g *Grid) toggleFlag(i int) {
	switch g.cells[i].State {
	case Hidden:
		g.cells[i].State = Flagged
	case Flagged:
		g.cells[i].State = Hidden
	}
}

// open reveals cell i. cascade is false only for the player's own click,
// which is the only kind counted in clicks.
func (g *Grid) open(i int, cascade bool) bool {
	c := &g.cells[i]
	if c.State != Hidden {
		return false
	}

	c.State = Revealed
	g.unrevealed--
	if !cascade {
		g.clicks++
	}

	if c.Mine {
		g.detonated = true
		return true
	}
	if c.Adjacent != 0 {
		return false
	}

	/*
	 * Flood fill. Every cell pushed onto the worklist has just been
	 * revealed and has no mined neighbours, so each cell enters it at
	 * most once.
	 */
	var todo celltodo
	todo.add(i)
	for j, ok := todo.next(); ok; j, ok = todo.next() {
		g.neighbours(j, func(k int) {
			n := &g.cells[k]
			if n.State != Hidden {
				return
			}
			if n.Mine {
				panic(AssertionError{"mine next to an empty cell"})
			}
			n.State = Revealed
			g.unrevealed--
			if n.Adjacent == 0 {
				todo.add(k)
			}
		})
	}
	return false
}

// RevealAllMines exposes every mine, flagged or not. unrevealed is left as
// it was since the game is already decided.
func (g *Grid) RevealAllMines() {
	for i := range g.cells {
		if g.cells[i].Mine {
			g.cells[i].State = Revealed
		}
	}
}
