package records

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/mines"
)

func setupPostgres(t *testing.T) *PostgresBackend {
	t.Helper()
	url, ok := os.LookupEnv("MINES_TEST_DATABASE_URL")
	if !ok || testing.Short() {
		t.Skip("MINES_TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()
	pool, err := database.ConnectAndMigrate(ctx, url)
	require.NoError(t, err)

	b := NewPostgresBackend(pool)
	t.Cleanup(func() {
		_ = b.WriteRecords(ctx, nil)
		_ = b.WriteScores(ctx, nil)
		b.Close()
	})
	require.NoError(t, b.WriteRecords(ctx, nil))
	require.NoError(t, b.WriteScores(ctx, nil))
	return b
}

func TestPostgresBackend(t *testing.T) {
	ctx := context.Background()
	b := setupPostgres(t)

	wantRecords := []mines.Record{
		{Size: "2", MineCount: "1", Meta: "1700000000:1:0", State: "1040"},
		{Size: "3", MineCount: "2", Meta: "0", State: "110000000"},
	}
	require.NoError(t, b.WriteRecords(ctx, wantRecords))
	records, err := b.ReadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)

	require.NoError(t, b.WriteRecords(ctx, wantRecords[1:]))
	records, err = b.ReadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantRecords[1:], records)

	wantScores := []Score{{"alice", 120}, {"bob", 80}}
	require.NoError(t, b.WriteScores(ctx, wantScores))
	scores, err := b.ReadScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantScores, scores)
}

func TestPostgresRejectsNegativeScore(t *testing.T) {
	ctx := context.Background()
	b := setupPostgres(t)

	err := b.WriteScores(ctx, []Score{{"alice", 1}, {"mallory", -5}})
	assert.ErrorIs(t, err, ErrInvalidScore)

	// the transaction was rolled back
	scores, err := b.ReadScores(ctx)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
