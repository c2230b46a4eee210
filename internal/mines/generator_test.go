package mines

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		size, mineCount int
	}{
		{"size 1", 1, 1},
		{"size 0", 0, 1},
		{"no mines", 5, 0},
		{"negative mines", 5, -3},
		{"no safe cell", 3, 9},
		{"too many mines", 3, 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			g, err := New(test.size, test.mineCount, r)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, g)
		})
	}
}

func TestNewGrid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		size, mineCount int
	}{
		{"2x2(1)", 2, 1},
		{"2x2(3)", 2, 3},
		{"9x9(10)", 9, 10},
		{"16x16(40)", 16, 40},
		{"16x16(255)", 16, 255},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			start := time.Now()
			g, err := New(test.size, test.mineCount, r)
			require.NoError(t, err)

			assert.Equal(t, test.size, g.Size())
			assert.Equal(t, test.mineCount, g.MineCount())
			assert.Equal(t, test.size*test.size, g.Unrevealed())
			assert.Zero(t, g.Clicks())
			assert.Zero(t, g.Sessions())
			assert.Equal(t, Playing, g.Outcome())
			assert.False(t, g.CreatedAt().Before(start.Truncate(time.Second)))

			mines := 0
			for i, c := range g.cells {
				assert.Equal(t, Hidden, c.State)
				if c.Mine {
					mines++
				}
				n := 0
				g.neighbours(i, func(j int) {
					if g.cells[j].Mine {
						n++
					}
				})
				assert.Equal(t, n, c.Adjacent, "cell %d", i)
			}
			assert.Equal(t, test.mineCount, mines)
		})
	}
}

func TestNewGridsAreDistinct(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	a, err := New(9, 10, r)
	require.NoError(t, err)
	b, err := New(9, 10, r)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}

// Every cell should be able to hold a mine.
func TestPlacementCoversBoard(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := make([]bool, 16)
	for range 500 {
		g, err := New(4, 1, r)
		require.NoError(t, err)
		for i, c := range g.cells {
			if c.Mine {
				seen[i] = true
			}
		}
	}
	for i, ok := range seen {
		assert.True(t, ok, "cell %d never mined", i)
	}
}
