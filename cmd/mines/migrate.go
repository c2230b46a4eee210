package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the postgres schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is not set")
		}
		version, err := database.Migrate(cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"version": version}).Info("migration successful")
		return nil
	},
}
