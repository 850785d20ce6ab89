package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/internal/report"
	"crab.casa/tactics-engine/match"
)

var playMatchID string

var playCmd = &cobra.Command{
	Use:   "play <matchId>",
	Short: "Print a running match's current board summary and action histogram",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	matchID := args[0]

	db, e, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	m, _, err := e.Matches.Read(context.Background(), matchID)
	if err != nil {
		return fmt.Errorf("read match: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, m)
	report.PrintActionHistogram(os.Stdout, m)
	if m.Status == match.StatusActive {
		report.PrintLoot(os.Stdout, m)
	}
	return nil
}
