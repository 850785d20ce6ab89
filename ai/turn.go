package ai

import (
	"fmt"
	"math/rand"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/los"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/resolve"
)

// consumingActions are the action kinds whose resolver reports
// ConsumeTurn=true (spec §4.4 GLOSSARY "Free action").
var consumingActions = map[string]bool{
	"MOVE":       true,
	"SHOOT":      true,
	"CRAFT_WALL": true,
	"INTERACT":   true,
	"SKIP_TURN":  true,
}

// TurnResult reports everything the orchestrator needs after one AI turn.
type TurnResult struct {
	Actions      []Candidate
	Ended        bool
	ConsumedTurn bool
}

// RunTurn drives the AI's multi-action turn (spec §4.5): enumerate, score,
// epsilon-greedy select, resolve, repeat until a turn-consuming action
// lands or the free-action cap forces one. rng is injectable for test
// determinism (spec §8 scenario 5); production callers pass a
// system-seeded source.
func RunTurn(m *match.Match, policy *match.AIPolicy, elo int, rng *rand.Rand) (TurnResult, error) {
	freeLeft := maxFreeActions
	var taken []Candidate

	for {
		path := optimalPath(m)
		candidates := Enumerate(m, path)
		if freeLeft <= 0 {
			candidates = onlyConsuming(candidates)
		}
		if len(candidates) == 0 {
			candidates = []Candidate{{Action: "SKIP_TURN"}}
		}
		for i := range candidates {
			candidates[i].Features = ExtractFeatures(m, elo, path, candidates[i])
		}

		chosen, _ := Select(policy, candidates, rng)

		resolver, ok := resolve.Dispatch[chosen.Action]
		if !ok {
			return TurnResult{}, fmt.Errorf("ai: unknown action type %q", chosen.Action)
		}
		result, err := resolver(m, match.RoleAI, chosen.Params)
		if err != nil {
			return TurnResult{}, fmt.Errorf("ai: resolving %s: %w", chosen.Action, err)
		}
		taken = append(taken, chosen)

		if m.Status == match.StatusEnded {
			return TurnResult{Actions: taken, Ended: true, ConsumedTurn: result.ConsumeTurn}, nil
		}
		if result.ConsumeTurn {
			return TurnResult{Actions: taken, ConsumedTurn: true}, nil
		}
		freeLeft--
	}
}

func onlyConsuming(candidates []Candidate) []Candidate {
	out := candidates[:0:0]
	for _, c := range candidates {
		if consumingActions[c.Action] {
			out = append(out, c)
		}
	}
	return out
}

// optimalPath computes the AI's A* path to the opponent's cell (spec §4.5):
// shortest among paths to every in-bounds neighbor of the opponent, with
// walls and the opponent's own cell blocked.
func optimalPath(m *match.Match) []grid.Cell {
	blocked := map[grid.Cell]bool{m.Entities.Player.Pos: true}
	for _, w := range m.Entities.Walls {
		blocked[w.Pos] = true
	}

	var best []grid.Cell
	for _, d := range moveDirs {
		n := grid.Cell{X: m.Entities.Player.Pos.X + d.X, Y: m.Entities.Player.Pos.Y + d.Y}
		if !m.GridSize.InBounds(n) || blocked[n] {
			continue
		}
		path := los.AStar(m.GridSize, blocked, m.Entities.AI.Pos, n)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}
