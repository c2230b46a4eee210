package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/records"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

// loggers are every package-level logger in the binary.
var loggers = []*logrus.Logger{log, mines.Log, records.Log, session.Log}

// setupLogging applies the configured level to all loggers. With a log
// file the console stays quiet and entries go to the rotated file instead.
func setupLogging(cfg config.Config, verbose bool) error {
	level := cfg.LogLevel()
	if verbose {
		level = logrus.DebugLevel
	}

	var hook logrus.Hook
	if cfg.Log.File != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
	}

	for _, l := range loggers {
		l.SetLevel(level)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		if hook != nil {
			l.SetOutput(io.Discard)
			l.AddHook(hook)
		}
	}
	return nil
}
