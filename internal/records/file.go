package records

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

const (
	DefaultRecordsFile = "MinesweeperRecords.txt"
	DefaultScoresFile  = "MinesweeperHighscores.txt"
)

// FileBackend keeps records and scores as two text documents in a directory.
type FileBackend struct {
	RecordsPath string
	ScoresPath  string
}

func NewFileBackend(dir, recordsFile, scoresFile string) (*FileBackend, error) {
	if recordsFile == "" {
		recordsFile = DefaultRecordsFile
	}
	if scoresFile == "" {
		scoresFile = DefaultScoresFile
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create records directory: %w", err)
	}
	return &FileBackend{
		RecordsPath: filepath.Join(dir, recordsFile),
		ScoresPath:  filepath.Join(dir, scoresFile),
	}, nil
}

// readDoc treats a missing file as an empty document.
func readDoc(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// writeDoc replaces path atomically.
func writeDoc(path, doc string) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

func (b *FileBackend) ReadRecords(ctx context.Context) ([]mines.Record, error) {
	doc, err := readDoc(b.RecordsPath)
	if err != nil {
		return nil, err
	}
	return ParseRecords(doc), nil
}

func (b *FileBackend) WriteRecords(ctx context.Context, records []mines.Record) error {
	return writeDoc(b.RecordsPath, FormatRecords(records))
}

func (b *FileBackend) ReadScores(ctx context.Context) ([]Score, error) {
	doc, err := readDoc(b.ScoresPath)
	if err != nil {
		return nil, err
	}
	scores, dropped := ParseScores(doc)
	if dropped > 0 {
		Log.WithFields(logrus.Fields{
			"path":    b.ScoresPath,
			"dropped": dropped,
		}).Warn("skipped malformed leaderboard entries")
	}
	return scores, nil
}

func (b *FileBackend) WriteScores(ctx context.Context, scores []Score) error {
	return writeDoc(b.ScoresPath, FormatScores(scores))
}

func (b *FileBackend) Close() error {
	return nil
}
