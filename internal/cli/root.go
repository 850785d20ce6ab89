// Package cli implements enginectl's cobra commands, a development/ops
// surface for driving the engine against the sqlite store without a live
// Nakama deployment — grounded on the teacher pack's own cmd/root.go shape
// (pableeee-go-cs-metrics).
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/store/sqlite"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "enginectl",
	Short: "Drive the tactics engine against a local sqlite store",
	Long:  "enginectl creates and plays matches against the sqlite dev store, the systems-language stand-in for poking a live Nakama deployment.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".tactics-engine", "engine.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to the sqlite database")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(actCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(reportCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openEngine opens the sqlite store at dbPath and wires an Engine around it.
func openEngine() (*sqlite.DB, *engine.Engine, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	e := engine.New(db.MatchStore(), db.HistoryStore(), db.PolicyStore(), db.UserStore())
	return db, e, nil
}
