package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/match"
)

var (
	newUser       string
	newHandle     string
	newSeed       string
	newELO        int
	newWidth      int
	newHeight     int
	newFirstActor string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Initiate a fresh match",
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newUser, "user", "local-player", "user ID")
	newCmd.Flags().StringVar(&newHandle, "handle", "", "display handle")
	newCmd.Flags().StringVar(&newSeed, "seed", "", "world seed (random if empty)")
	newCmd.Flags().IntVar(&newELO, "elo", 1200, "player ELO, controls world-gen bucket")
	newCmd.Flags().IntVar(&newWidth, "width", 16, "grid width")
	newCmd.Flags().IntVar(&newHeight, "height", 16, "grid height")
	newCmd.Flags().StringVar(&newFirstActor, "first-actor", match.RolePlayer, "which side acts first: player|ai")
}

func runNew(cmd *cobra.Command, args []string) error {
	db, e, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := e.Initiate(context.Background(), nil, engine.InitiateInput{
		UserID:     newUser,
		Handle:     newHandle,
		Seed:       newSeed,
		ELO:        newELO,
		Width:      newWidth,
		Height:     newHeight,
		FirstActor: newFirstActor,
	})
	if err != nil {
		return fmt.Errorf("initiate: %w", err)
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
