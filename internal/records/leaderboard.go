package records

import (
	"cmp"
	"slices"
	"strings"
)

const MaxScores = 10

// Leaderboard holds at most [MaxScores] scores, highest first.
type Leaderboard struct {
	scores []Score
}

func NewLeaderboard(scores []Score) *Leaderboard {
	l := &Leaderboard{scores: slices.Clone(scores)}
	l.normalize()
	return l
}

// normalize sorts descending, keeping the order of equal scores, and drops
// everything past [MaxScores].
func (l *Leaderboard) normalize() {
	slices.SortStableFunc(l.scores, func(a, b Score) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(l.scores) > MaxScores {
		l.scores = l.scores[:MaxScores]
	}
}

// Qualifies reports whether score would make it onto the board.
func (l *Leaderboard) Qualifies(score int) bool {
	return len(l.scores) < MaxScores || score > l.scores[len(l.scores)-1].Score
}

// Submit inserts a score if it qualifies. Whitespace in name is collapsed so
// that the name stays on one line.
func (l *Leaderboard) Submit(name string, score int) bool {
	if !l.Qualifies(score) {
		return false
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = "anonymous"
	}
	l.scores = append(l.scores, Score{Name: name, Score: score})
	l.normalize()
	return true
}

func (l *Leaderboard) Scores() []Score {
	return slices.Clone(l.scores)
}

func (l *Leaderboard) Len() int {
	return len(l.scores)
}
