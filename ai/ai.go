// Package ai implements the AI opponent's turn (spec §4.5): candidate
// enumeration over the current snapshot, hand-designed feature extraction,
// linear scoring against a learned per-player weight vector, epsilon-greedy
// exploration, and a multi-free-action turn loop capped at maxFreeActions.
// Feature and scoring code is plain float64 arithmetic — this is hand-tuned
// bandit-style scoring over a handful of features, not a general ML
// workload, so no ML library from the retrieval pack fits here.
package ai

import (
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/resolve"
)

// maxFreeActions caps the AI at two free actions per turn before a
// turn-consuming action is required (spec §4.5, a hard stop).
const maxFreeActions = 2

// globalPolicyKey names the stored fallback policy shared across players
// with no per-player history yet (spec §4.5 "fall back to a global default").
const globalPolicyKey = "global"

// Candidate is one enumerated option for the AI's current decision point.
type Candidate struct {
	Action   string
	Params   resolve.Params
	Features []float64
	Meta     map[string]any
}

// DefaultPolicy is the global default embedded in code, used when neither a
// player-scoped nor a stored global policy exists yet (spec §4.5).
func DefaultPolicy() *match.AIPolicy {
	return &match.AIPolicy{
		Scope:   "global",
		Epsilon: 0.1,
		Actions: map[string]match.ActionWeights{
			"MOVE":         {Weights: []float64{1.0, 1.0, 1.0, 1.0, 1.0}},
			"SHOOT":        {Weights: []float64{1.0, 1.0, 1.0, 1.0}},
			"CRAFT_WALL":   {Weights: []float64{1.0, 1.0, 0}},
			"CRAFT_WEAPON": {Weights: []float64{}},
			"HEAL":         {Weights: []float64{}},
			"INTERACT":     {Weights: []float64{}},
			"SKIP_TURN":    {Weights: []float64{}},
		},
	}
}
