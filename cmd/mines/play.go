package main

import (
	"context"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/records"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game menu (default)",
	Args:  cobra.NoArgs,
	RunE:  withStore(runPlay),
}

func runPlay(ctx context.Context, cmd *cobra.Command, store *records.Store) error {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	c := session.NewController(
		store, os.Stdin, cmd.OutOrStdout(), session.RandomGrids(r),
	)
	log.Debug("starting session")
	return c.Run(ctx)
}
