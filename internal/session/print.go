package session

import (
	"fmt"
	"io"

	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/records"
)

const TimeLayout = "2006-01-02 15:04:05"

func PrintLeaderboard(w io.Writer, scores []records.Score) {
	fmt.Fprintln(w, "LEADERBOARD:")
	for i, s := range scores {
		fmt.Fprintf(w, "%d. %s (%d points)\n", i+1, s.Name, s.Score)
	}
	if len(scores) == 0 {
		fmt.Fprintln(w, "NO DATA")
	}
}

// PrintRecords lists saved grids with their progress.
func PrintRecords(w io.Writer, grids []*mines.Grid) {
	for i, g := range grids {
		fmt.Fprintf(w, "%d. %s | %s | Field size: %d, Mines: %d, Clicks: %d, Unopened: %d\n",
			i,
			g.ID(),
			g.CreatedAt().Format(TimeLayout),
			g.Size(),
			g.MineCount(),
			g.Clicks(),
			g.Unrevealed(),
		)
	}
	if len(grids) == 0 {
		fmt.Fprintln(w, "NO RECORDS SAVED")
	}
}
