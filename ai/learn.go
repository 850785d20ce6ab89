package ai

import (
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/worldgen"
)

// Learn applies the terminal-transition policy update (spec §4.5): games
// and wins counters increment, and w[0] of every action type the AI took
// this match shifts by the learning rate (positive on a win, negative on a
// loss), clamped into the table's range. Other weight positions are
// untouched.
func Learn(policy *match.AIPolicy, m *match.Match, aiWon bool) {
	policy.GamesPlayed++
	if aiWon {
		policy.Wins++
	}

	rate := worldgen.AILearningRate()
	if !aiWon {
		rate = -rate
	}
	lo, hi := worldgen.AIWeightClamp()

	taken := map[string]bool{}
	for _, entry := range m.ActionHistory {
		if entry.Actor == match.RoleAI {
			taken[entry.Action] = true
		}
	}

	if policy.Actions == nil {
		policy.Actions = map[string]match.ActionWeights{}
	}
	for actionType := range taken {
		w := policy.Actions[actionType]
		if len(w.Weights) == 0 {
			w.Weights = []float64{1.0}
		}
		w.Weights[0] = clamp(w.Weights[0]+rate, lo, hi)
		policy.Actions[actionType] = w
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
