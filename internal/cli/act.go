package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/resolve"
)

var actParamsJSON string

var actCmd = &cobra.Command{
	Use:   "act <matchId> <actionType>",
	Short: "Submit one player action and print the resulting snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runAct,
}

func init() {
	actCmd.Flags().StringVar(&actParamsJSON, "params", "{}", "JSON-encoded resolve.Params body")
}

func runAct(cmd *cobra.Command, args []string) error {
	matchID, actionType := args[0], args[1]

	var params resolve.Params
	if err := json.Unmarshal([]byte(actParamsJSON), &params); err != nil {
		return fmt.Errorf("parse --params: %w", err)
	}

	db, e, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := e.Update(context.Background(), nil, engine.UpdateInput{
		MatchID:    matchID,
		Actor:      match.RolePlayer,
		ActionType: actionType,
		Params:     params,
	})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
