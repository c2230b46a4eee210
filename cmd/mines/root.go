package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/records"
)

var rootCmd = &cobra.Command{
	Use:           "mines",
	Short:         "Console minesweeper",
	Long:          "Play minesweeper in the terminal. Unfinished games and the top ten scores are kept between runs.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          withStore(runPlay),
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default mines.yaml in . or $HOME)")
	flags.String("backend", "", "storage backend: file, sqlite or postgres")
	flags.String("dir", "", "directory for the file and sqlite backends")
	flags.BoolP("verbose", "v", false, "debug logging")

	_ = viper.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("storage.dir", flags.Lookup("dir"))

	rootCmd.AddCommand(playCmd, recordsCmd, leaderboardCmd, migrateCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.Init(cfgFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := setupLogging(cfg, verbose); err != nil {
		return cfg, err
	}
	log.WithFields(cfg.Fields()).Debug("config")
	return cfg, nil
}

type storeFunc func(ctx context.Context, cmd *cobra.Command, store *records.Store) error

// withStore loads config, opens the configured backend around fn and closes
// it afterwards.
func withStore(fn storeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		backend, err := openBackend(ctx, cfg)
		if err != nil {
			return fmt.Errorf("unable to open %s storage: %w", cfg.Storage.Backend, err)
		}
		store := records.NewStore(backend)
		defer func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("unable to close storage")
			}
		}()
		return fn(ctx, cmd, store)
	}
}
