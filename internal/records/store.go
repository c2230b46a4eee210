package records

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

// Store is the set of saved grids and the leaderboard, backed by a
// [Backend]. Grids are identified by [mines.Grid.ID].
type Store struct {
	backend Backend

	recordsMu sync.Mutex
	grids     []*mines.Grid

	scoresMu sync.Mutex
	board    *Leaderboard
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		board:   NewLeaderboard(nil),
	}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Load reads the saved grids and the leaderboard. A failure in either leaves
// that part empty; the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.LoadRecords(ctx) })
	g.Go(func() error { return s.LoadLeaderboard(ctx) })
	return g.Wait()
}

// LoadRecords replaces the in-memory grids with those in the backend.
// Records that do not reconstruct are dropped and the backend is rewritten
// without them.
func (s *Store) LoadRecords(ctx context.Context) error {
	raw, err := s.backend.ReadRecords(ctx)
	if err != nil {
		s.recordsMu.Lock()
		s.grids = nil
		s.recordsMu.Unlock()
		return storageError("read records", err)
	}

	grids := make([]*mines.Grid, 0, len(raw))
	for i, r := range raw {
		g, err := mines.Reconstruct(r)
		if err != nil {
			Log.WithFields(logrus.Fields{
				"index": i,
				"error": err,
			}).Warn("dropping malformed record")
			continue
		}
		grids = append(grids, g)
	}

	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()
	s.grids = grids

	Log.WithFields(logrus.Fields{
		"loaded":  len(grids),
		"dropped": len(raw) - len(grids),
	}).Debug("records loaded")

	if len(grids) != len(raw) {
		return s.flushRecords(ctx)
	}
	return nil
}

func (s *Store) LoadLeaderboard(ctx context.Context) error {
	scores, err := s.backend.ReadScores(ctx)

	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()
	if err != nil {
		s.board = NewLeaderboard(nil)
		return storageError("read scores", err)
	}
	s.board = NewLeaderboard(scores)
	return nil
}

// flushRecords must be called with recordsMu held.
func (s *Store) flushRecords(ctx context.Context) error {
	raw := make([]mines.Record, len(s.grids))
	for i, g := range s.grids {
		raw[i] = g.Encode()
	}
	if err := s.backend.WriteRecords(ctx, raw); err != nil {
		return storageError("write records", err)
	}
	return nil
}

// List returns the saved grids in the order they were first saved.
func (s *Store) List() []*mines.Grid {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()
	return slices.Clone(s.grids)
}

func (s *Store) Get(id uuid.UUID) (*mines.Grid, bool) {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.grids[i], true
}

func (s *Store) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.grids, func(g *mines.Grid) bool {
		return g.ID() == id
	})
}

// Save adds g, or replaces the saved grid with the same ID, and persists all
// records.
func (s *Store) Save(ctx context.Context, g *mines.Grid) error {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()

	if i := s.indexOf(g.ID()); i >= 0 {
		s.grids[i] = g
	} else {
		s.grids = append(s.grids, g)
	}
	return s.flushRecords(ctx)
}

// Remove deletes the grid with the given ID, if any, and persists the rest.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.grids = slices.Delete(s.grids, i, i+1)
	return s.flushRecords(ctx)
}

func (s *Store) Qualifies(score int) bool {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()
	return s.board.Qualifies(score)
}

// Submit adds a score to the leaderboard and persists it. ok is false when
// the score does not qualify, in which case nothing is written.
func (s *Store) Submit(ctx context.Context, name string, score int) (ok bool, err error) {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()

	if !s.board.Submit(name, score) {
		return false, nil
	}
	if err := s.backend.WriteScores(ctx, s.board.Scores()); err != nil {
		return true, storageError("write scores", err)
	}
	return true, nil
}

func (s *Store) Leaderboard() []Score {
	s.scoresMu.Lock()
	defer s.scoresMu.Unlock()
	return s.board.Scores()
}

func (s *Store) Close() error {
	return s.backend.Close()
}
