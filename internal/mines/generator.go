package mines

import (
	"math/rand/v2"
)

// New creates a size x size grid with mineCount mines placed uniformly at
// random. Parameters are validated, never clamped.
func New(size, mineCount int, r *rand.Rand) (*Grid, error) {
	if err := ValidateParams(size, mineCount); err != nil {
		return nil, err
	}

	g := newGrid(size, mineCount)
	g.placeMines(r)
	g.countAdjacent()

	Log.WithFields(logFields(g)).Debug("new grid")

	return g, nil
}

func (g *Grid) placeMines(r *rand.Rand) {
	/*
	 * Write down the list of possible mine locations, then pick
	 * mineCount off it at random.
	 */
	candidates := make([]int, len(g.cells))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range g.mineCount {
		i := r.IntN(k)
		g.cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}
}
