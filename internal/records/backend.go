package records

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

var Log = logrus.New()

var (
	ErrStorage      = errors.New("record storage failure")
	ErrInvalidScore = errors.New("invalid score")
)

type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Backend persists saved grids and the leaderboard as whole documents.
// Records are kept in their raw text form so that validation happens in one
// place no matter where they were stored.
type Backend interface {
	ReadRecords(ctx context.Context) ([]mines.Record, error)
	WriteRecords(ctx context.Context, records []mines.Record) error
	ReadScores(ctx context.Context) ([]Score, error)
	WriteScores(ctx context.Context, scores []Score) error
	Close() error
}
