package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

// PostgresBackend keeps records and scores in the record and highscore
// tables created by the database migrations. Both are rewritten as a whole
// on every save, in a transaction.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

type recordRow struct {
	Position  int    `db:"position"`
	Size      string `db:"size"`
	MineCount string `db:"mine_count"`
	Meta      string `db:"meta"`
	GridState string `db:"grid_state"`
}

type highscoreRow struct {
	Position int    `db:"position"`
	Name     string `db:"name"`
	Score    int    `db:"score"`
}

func (b *PostgresBackend) ReadRecords(ctx context.Context) ([]mines.Record, error) {
	rows, err := b.pool.Query(ctx, `
	SELECT position, size, mine_count, meta, grid_state
	FROM record
	ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[recordRow])
	if err != nil {
		return nil, err
	}
	records := make([]mines.Record, len(collected))
	for i, r := range collected {
		records[i] = mines.Record{
			Size:      r.Size,
			MineCount: r.MineCount,
			Meta:      r.Meta,
			State:     r.GridState,
		}
	}
	return records, nil
}

func (b *PostgresBackend) WriteRecords(ctx context.Context, records []mines.Record) error {
	return pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM record;"); err != nil {
			return err
		}
		for i, r := range records {
			_, err := tx.Exec(ctx, `
			INSERT INTO record (position, size, mine_count, meta, grid_state)
			VALUES (@position, @size, @mine_count, @meta, @grid_state);`,
				pgx.NamedArgs{
					"position":   i,
					"size":       r.Size,
					"mine_count": r.MineCount,
					"meta":       r.Meta,
					"grid_state": r.State,
				},
			)
			if err != nil {
				return fmt.Errorf("insert record %d: %w", i, err)
			}
		}
		return nil
	})
}

func (b *PostgresBackend) ReadScores(ctx context.Context) ([]Score, error) {
	rows, err := b.pool.Query(ctx, `
	SELECT position, name, score
	FROM highscore
	ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[highscoreRow])
	if err != nil {
		return nil, err
	}
	scores := make([]Score, len(collected))
	for i, r := range collected {
		scores[i] = Score{Name: r.Name, Score: r.Score}
	}
	return scores, nil
}

func (b *PostgresBackend) WriteScores(ctx context.Context, scores []Score) error {
	return pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM highscore;"); err != nil {
			return err
		}
		for i, s := range scores {
			_, err := tx.Exec(ctx, `
			INSERT INTO highscore (position, name, score)
			VALUES (@position, @name, @score);`,
				pgx.NamedArgs{
					"position": i,
					"name":     s.Name,
					"score":    s.Score,
				},
			)
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
				return fmt.Errorf("%w: %d for %q", ErrInvalidScore, s.Score, s.Name)
			}
			if err != nil {
				return fmt.Errorf("insert score %d: %w", i, err)
			}
		}
		return nil
	})
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
