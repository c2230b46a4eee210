package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/records"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List saved games",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *records.Store) error {
		if err := store.LoadRecords(ctx); err != nil {
			return err
		}
		session.PrintRecords(cmd.OutOrStdout(), store.List())
		return nil
	}),
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the top scores",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *records.Store) error {
		if err := store.LoadLeaderboard(ctx); err != nil {
			return err
		}
		session.PrintLeaderboard(cmd.OutOrStdout(), store.Leaderboard())
		return nil
	}),
}
