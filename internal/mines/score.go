package mines

import "math"

// Score rates a played grid. Denser boards score higher up to a sweet spot
// and larger boards scale the result; a grid never played to an outcome
// scores 0.
func Score(g *Grid) int {
	if g.sessions == 0 {
		return 0
	}
	area := float64(g.size * g.size)
	mines := float64(g.mineCount)
	difficulty := 5.0 / (area*area/4.0 - area + 1.0) *
		(mines - 1.0) * (area - 1.0 - mines)
	return int(math.Round(
		difficulty * float64(g.clicks) / float64(g.sessions) * area,
	))
}
