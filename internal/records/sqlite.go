package records

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

const (
	recordsKey = "records"
	scoresKey  = "scores"
)

// KV is a gob-encoded key/value table in a SQLite database.
type KV struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return s != ""
}

// Creates a new [KV] instance. name is used as the table name and may only
// contain upper- or lowercase Latin letters.
func NewKV(ctx context.Context, db *sql.DB, name string) (*KV, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, err
	}
	return &KV{name: name, db: db}, nil
}

// Retrieve a value from the store. Value must be a pointer or nil. If key is
// not present, [ErrNotFound] is returned. If value is nil, data read from store
// is silently discarded.
func (s *KV) Get(ctx context.Context, key string, value any) error {
	var v []uint8
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+s.name+` WHERE key = ?;`,
		key).Scan(&v); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(v)).Decode(value)
}

// Inserts a new key-value pair or updates an existing one.
func (s *KV) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

// Deletes key from store without checking if it existed.
func (s *KV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM `+s.name+` WHERE key = ?;`, key)
	return err
}

func (s *KV) Count(ctx context.Context) (count int, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+s.name+`;`).Scan(&count)
	return
}

func (s *KV) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM `+s.name+`;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// SQLiteBackend stores the records and leaderboard as two values of a [KV].
type SQLiteBackend struct {
	db *sql.DB
	kv *KV
}

func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// one writer; the pragmas below are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to set busy timeout: %w", err)
	}

	kv, err := NewKV(ctx, db, "minesweeper")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create store: %w", err)
	}
	return &SQLiteBackend{db: db, kv: kv}, nil
}

func (b *SQLiteBackend) ReadRecords(ctx context.Context) ([]mines.Record, error) {
	var records []mines.Record
	err := b.kv.Get(ctx, recordsKey, &records)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return records, err
}

func (b *SQLiteBackend) WriteRecords(ctx context.Context, records []mines.Record) error {
	if len(records) == 0 {
		return b.kv.Delete(ctx, recordsKey)
	}
	return b.kv.Set(ctx, recordsKey, records)
}

func (b *SQLiteBackend) ReadScores(ctx context.Context) ([]Score, error) {
	var scores []Score
	err := b.kv.Get(ctx, scoresKey, &scores)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return scores, err
}

func (b *SQLiteBackend) WriteScores(ctx context.Context, scores []Score) error {
	if len(scores) == 0 {
		return b.kv.Delete(ctx, scoresKey)
	}
	return b.kv.Set(ctx, scoresKey, scores)
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
