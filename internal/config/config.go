package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "MINES"

var (
	Backends = []string{"file", "sqlite", "postgres"}

	// EnvKeyReplacer maps storage.dir to MINES_STORAGE_DIR.
	EnvKeyReplacer = strings.NewReplacer(".", "_")
)

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Dir         string `mapstructure:"dir"`
	RecordsFile string `mapstructure:"records_file"`
	ScoresFile  string `mapstructure:"scores_file"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// Config is populated from mines.yaml, MINES_* env vars and CLI flags.
type Config struct {
	Development bool          `mapstructure:"development"`
	Log         LogConfig     `mapstructure:"log"`
	Storage     StorageConfig `mapstructure:"storage"`
}

// Init points viper at cfgFile, or at mines.{yaml,toml,json} in the working
// directory and the user's home, and enables MINES_* env vars. A missing
// config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mines")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("unable to read config: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("development", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.dir", ".")
	viper.SetDefault("storage.records_file", "MinesweeperRecords.txt")
	viper.SetDefault("storage.scores_file", "MinesweeperHighscores.txt")
	viper.SetDefault("storage.sqlite_path", "")
	viper.SetDefault("storage.database_url", "")
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment or flags.
func Load() (Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config: %w", err)
	}
	if !slices.Contains(Backends, cfg.Storage.Backend) {
		return cfg, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	if cfg.Storage.Backend == "postgres" && cfg.Storage.DatabaseURL == "" {
		return cfg, fmt.Errorf("storage.database_url is required for the postgres backend")
	}
	return cfg, nil
}

// LogLevel is debug in development mode regardless of log.level.
func (c Config) LogLevel() logrus.Level {
	if c.Development {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c Config) SQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.Storage.Dir, "minesweeper.db")
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"development":          c.Development,
		"log_level":            c.Log.Level,
		"log_file":             c.Log.File,
		"storage_backend":      c.Storage.Backend,
		"storage_dir":          c.Storage.Dir,
		"storage_records_file": c.Storage.RecordsFile,
		"storage_scores_file":  c.Storage.ScoresFile,
		"storage_sqlite_path":  c.SQLitePath(),
		"storage_database_url": c.Storage.DatabaseURL != "",
	}
}
