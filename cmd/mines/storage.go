package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/records"
)

func openBackend(ctx context.Context, cfg config.Config) (records.Backend, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		path := cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("unable to create database directory: %w", err)
		}
		b, err := records.NewSQLiteBackend(ctx, path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "postgres":
		pool, err := database.ConnectAndMigrate(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return records.NewPostgresBackend(pool), nil
	default:
		b, err := records.NewFileBackend(
			cfg.Storage.Dir, cfg.Storage.RecordsFile, cfg.Storage.ScoresFile,
		)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
