package mines

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is the persisted form of a [Grid]: four text fields, kept as text
// so that a backend can hold records that later fail validation.
type Record struct {
	Size      string
	MineCount string
	Meta      string
	State     string
}

// Meta is packed into [Record.Meta] as "createdAt:clicks:sessions", with
// createdAt in Unix seconds.
type Meta struct {
	CreatedAt int64
	Clicks    int
	Sessions  int
}

func (m Meta) String() string {
	return fmt.Sprintf("%d:%d:%d", m.CreatedAt, m.Clicks, m.Sessions)
}

// ParseMeta accepts one to three colon-separated integers; missing trailing
// parts are zero.
func ParseMeta(s string) (Meta, error) {
	var (
		m      Meta
		fields = strings.Split(s, ":")
	)
	if len(fields) > 3 {
		return m, fmt.Errorf("invalid meta %q: too many parts", s)
	}
	values := [3]int64{}
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return m, fmt.Errorf("invalid meta %q: %w", s, err)
		}
		if v < 0 {
			return m, fmt.Errorf("invalid meta %q: negative part", s)
		}
		values[i] = v
	}
	m.CreatedAt = values[0]
	m.Clicks = int(values[1])
	m.Sessions = int(values[2])
	return m, nil
}

/*
 * Each cell is one digit: mine + 2*state, i.e.
 *
 *  - 0 hidden, 1 hidden mine
 *  - 2 flagged, 3 flagged mine
 *  - 4 revealed, 5 revealed mine
 */

func encodeCell(c Cell) byte {
	code := 2 * byte(c.State)
	if c.Mine {
		code++
	}
	return '0' + code
}

func decodeCell(b byte) (Cell, bool) {
	if b < '0' || b > '5' {
		return Cell{}, false
	}
	code := b - '0'
	return Cell{Mine: code%2 == 1, State: CellState(code / 2)}, true
}

func (g *Grid) Encode() Record {
	var b strings.Builder
	b.Grow(len(g.cells))
	for _, c := range g.cells {
		b.WriteByte(encodeCell(c))
	}
	meta := Meta{
		CreatedAt: g.createdAt.Unix(),
		Clicks:    g.clicks,
		Sessions:  g.sessions,
	}
	return Record{
		Size:      strconv.Itoa(g.size),
		MineCount: strconv.Itoa(g.mineCount),
		Meta:      meta.String(),
		State:     b.String(),
	}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}

// Reconstruct rebuilds a grid from its persisted form. Any parse or
// consistency failure yields an error wrapping [ErrMalformedRecord] and no
// grid.
func Reconstruct(r Record) (*Grid, error) {
	size, err := strconv.Atoi(strings.TrimSpace(r.Size))
	if err != nil {
		return nil, malformed("size %q: %v", r.Size, err)
	}
	mineCount, err := strconv.Atoi(strings.TrimSpace(r.MineCount))
	if err != nil {
		return nil, malformed("mine count %q: %v", r.MineCount, err)
	}
	if err := ValidateParams(size, mineCount); err != nil {
		return nil, malformed("%v", err)
	}
	meta, err := ParseMeta(r.Meta)
	if err != nil {
		return nil, malformed("%v", err)
	}

	state := strings.TrimSpace(r.State)
	// size <= len(state) keeps size*size from overflowing
	if size > len(state) || len(state) != size*size {
		return nil, malformed(
			"grid state has %d cells, want %d", len(state), size*size,
		)
	}

	g := newGrid(size, mineCount)
	g.clicks = meta.Clicks
	g.sessions = meta.Sessions
	if meta.CreatedAt > 0 {
		g.createdAt = time.Unix(meta.CreatedAt, 0)
	}

	mines := 0
	for i := range len(state) {
		c, ok := decodeCell(state[i])
		if !ok {
			return nil, malformed("cell %d has code %q", i, state[i])
		}
		if c.Mine {
			mines++
		}
		if c.State == Revealed {
			g.unrevealed--
			if c.Mine {
				g.detonated = true
			}
		}
		g.cells[i] = c
	}
	if mines != mineCount {
		return nil, malformed("grid state has %d mines, want %d", mines, mineCount)
	}
	g.countAdjacent()

	return g, nil
}
