package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/ai"
	"crab.casa/tactics-engine/internal/report"
)

var reportUserID string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a user's effective AI policy weights",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportUserID, "user", "", "user ID to load the effective policy for (global policy if empty)")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, e, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	policy, _, err := ai.LoadEffectivePolicy(context.Background(), e.Policies, reportUserID)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}
	report.PrintPolicy(os.Stdout, policy)
	return nil
}
