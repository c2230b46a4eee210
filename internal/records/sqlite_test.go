package records

import (
	"context"
	"database/sql"
	"maps"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

func setupTestKV(t *testing.T) *KV {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err, "failed to open sqlite db")
	t.Cleanup(func() { db.Close() })

	kv, err := NewKV(context.Background(), db, "teststore")
	require.NoError(t, err, "failed to create store")
	return kv
}

func TestNewKVBadName(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "drop table", "t1", "x;--"} {
		_, err := NewKV(context.Background(), db, name)
		assert.ErrorIs(t, err, ErrBadName, name)
	}
}

func TestKVReadEmpty(t *testing.T) {
	kv := setupTestKV(t)

	var nothing struct{}
	assert.ErrorIs(t, kv.Get(context.Background(), "some key", &nothing), ErrNotFound)
}

func TestKVWriteAndReadStruct(t *testing.T) {
	ctx := context.Background()
	kv := setupTestKV(t)

	type Box struct {
		Name  string
		Array []int64
		AdHoc struct{ Flags []bool }
		Inner *Box
	}
	val := Box{
		Name:  "some name",
		Array: []int64{1, 2, 3},
		AdHoc: struct{ Flags []bool }{[]bool{true, false, true, false}},
		Inner: &Box{"other name", nil, struct{ Flags []bool }{[]bool{true}}, nil},
	}
	require.NoError(t, kv.Set(ctx, "key", val))

	var rtVal Box
	require.NoError(t, kv.Get(ctx, "key", &rtVal))
	assert.Equal(t, val, rtVal)

	// nil discards the value
	assert.NoError(t, kv.Get(ctx, "key", nil))
}

func TestKVUpdate(t *testing.T) {
	ctx := context.Background()
	kv := setupTestKV(t)
	r := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, kv.Set(ctx, "key", r.Int32()))
	val := r.Int32()
	require.NoError(t, kv.Set(ctx, "key", val))

	var rtVal int32
	require.NoError(t, kv.Get(ctx, "key", &rtVal))
	assert.Equal(t, val, rtVal)
}

func TestKVDelete(t *testing.T) {
	ctx := context.Background()
	kv := setupTestKV(t)

	assert.NoError(t, kv.Delete(ctx, "something"))

	require.NoError(t, kv.Set(ctx, "key", 1337))
	require.NoError(t, kv.Delete(ctx, "key"))

	var rtVal int
	assert.ErrorIs(t, kv.Get(ctx, "key", &rtVal), ErrNotFound)
}

func TestKVCountAndKeys(t *testing.T) {
	ctx := context.Background()
	kv := setupTestKV(t)

	rows := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	for key, value := range rows {
		require.NoError(t, kv.Set(ctx, key, value))
	}

	count, err := kv.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	delete(rows, "a")
	require.NoError(t, kv.Delete(ctx, "a"))

	count, err = kv.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, slices.Collect(maps.Keys(rows)), keys)
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mines.db")

	b, err := NewSQLiteBackend(ctx, path)
	require.NoError(t, err)

	records, err := b.ReadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	scores, err := b.ReadScores(ctx)
	require.NoError(t, err)
	assert.Empty(t, scores)

	wantRecords := []mines.Record{
		{Size: "2", MineCount: "1", Meta: "0:0:0", State: "1000"},
		// stored as text, validity is not checked here
		{Size: "x", MineCount: "", Meta: "", State: "?"},
	}
	wantScores := []Score{{"alice", 120}, {"bob", 80}}
	require.NoError(t, b.WriteRecords(ctx, wantRecords))
	require.NoError(t, b.WriteScores(ctx, wantScores))
	require.NoError(t, b.Close())

	b, err = NewSQLiteBackend(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	records, err = b.ReadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantRecords, records)
	scores, err = b.ReadScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantScores, scores)

	require.NoError(t, b.WriteRecords(ctx, nil))
	records, err = b.ReadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	b, err := NewSQLiteBackend(ctx, filepath.Join(t.TempDir(), "mines.db"))
	require.NoError(t, err)
	s := NewStore(b)
	defer s.Close()

	require.NoError(t, s.Load(ctx))
	g, err := mines.New(4, 3, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))
	_, err = s.Submit(ctx, "ann", 42)
	require.NoError(t, err)

	reloaded := NewStore(b)
	require.NoError(t, reloaded.Load(ctx))
	require.Len(t, reloaded.List(), 1)
	assert.Equal(t, g.Encode(), reloaded.List()[0].Encode())
	assert.Equal(t, []Score{{"ann", 42}}, reloaded.Leaderboard())
}
