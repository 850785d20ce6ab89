package ai

import (
	"math/rand"
	"testing"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
)

func baseAIMatch() *match.Match {
	return &match.Match{
		ELO:      1200,
		GridSize: grid.Size{W: 16, H: 16},
		Entities: match.EntitiesBlock{
			Player: match.Entity{Pos: grid.Cell{X: 10, Y: 5}, HP: 100, Inventory: map[string]int{}},
			AI:     match.Entity{Pos: grid.Cell{X: 2, Y: 5}, HP: 100, Inventory: map[string]int{}},
		},
	}
}

func TestScoreDotProductIgnoresExtraWeights(t *testing.T) {
	policy := &match.AIPolicy{
		Actions: map[string]match.ActionWeights{
			"SHOOT": {Weights: []float64{1, 2, 3, 4, 5, 6}},
		},
	}
	c := Candidate{Action: "SHOOT", Features: []float64{10, 0, 1, 1}}
	got := Score(policy, c)
	want := 1*10.0 + 2*0 + 3*1 + 4*1
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScoreUnknownActionIsZero(t *testing.T) {
	policy := &match.AIPolicy{Actions: map[string]match.ActionWeights{}}
	c := Candidate{Action: "MOVE", Features: []float64{1, 1, 1, 1, 1}}
	if got := Score(policy, c); got != 0 {
		t.Fatalf("expected 0 for unscored action, got %v", got)
	}
}

func TestSelectIsDeterministicGivenSeededRNG(t *testing.T) {
	policy := DefaultPolicy()
	candidates := []Candidate{
		{Action: "MOVE", Features: []float64{1, 0, 0, 0, 0}},
		{Action: "MOVE", Features: []float64{5, 0, 0, 0, 0}},
		{Action: "MOVE", Features: []float64{2, 0, 0, 0, 0}},
	}
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	c1, i1 := Select(policy, candidates, rng1)
	c2, i2 := Select(policy, candidates, rng2)
	if i1 != i2 || c1.Action != c2.Action {
		t.Fatal("expected identical selection for identical seed")
	}
}

func TestSelectExplorationExcludesArgmax(t *testing.T) {
	// spec §4.5: epsilon-greedy exploration picks "a uniform random pick
	// among the remaining candidates" — the argmax must never be re-picked
	// once exploration is triggered.
	policy := DefaultPolicy()
	policy.Epsilon = 1.0 // always explore
	candidates := []Candidate{
		{Action: "MOVE", Features: []float64{1, 0, 0, 0, 0}},
		{Action: "MOVE", Features: []float64{100, 0, 0, 0, 0}}, // argmax
		{Action: "MOVE", Features: []float64{2, 0, 0, 0, 0}},
	}
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		_, idx := Select(policy, candidates, rng)
		if idx == 1 {
			t.Fatalf("exploration re-picked the argmax at seed %d", seed)
		}
	}
}

func TestSelectSkipsExplorationWithOneCandidate(t *testing.T) {
	policy := DefaultPolicy()
	policy.Epsilon = 1.0 // would always explore if given the chance
	candidates := []Candidate{{Action: "SKIP_TURN"}}
	rng := rand.New(rand.NewSource(1))
	_, idx := Select(policy, candidates, rng)
	if idx != 0 {
		t.Fatal("expected the sole candidate regardless of epsilon")
	}
}

func TestLearnAdjustsOnlyTakenActionTypes(t *testing.T) {
	policy := DefaultPolicy()
	m := baseAIMatch()
	m.ActionHistory = []match.ActionLogEntry{
		{Actor: match.RoleAI, Action: "MOVE"},
		{Actor: match.RolePlayer, Action: "SHOOT"},
	}
	before := policy.Actions["SHOOT"].Weights[0]

	Learn(policy, m, true)

	if policy.Actions["MOVE"].Weights[0] != 1.05 {
		t.Fatalf("expected MOVE w[0] bumped to 1.05, got %v", policy.Actions["MOVE"].Weights[0])
	}
	if policy.Actions["SHOOT"].Weights[0] != before {
		t.Fatal("SHOOT was not taken by the AI this match and must be untouched")
	}
	if policy.GamesPlayed != 1 || policy.Wins != 1 {
		t.Fatalf("expected gamesPlayed=1 wins=1, got %+v", policy)
	}
}

func TestLearnClampsToRange(t *testing.T) {
	policy := DefaultPolicy()
	policy.Actions["MOVE"] = match.ActionWeights{Weights: []float64{5.0, 1, 1, 1, 1}}
	m := baseAIMatch()
	m.ActionHistory = []match.ActionLogEntry{{Actor: match.RoleAI, Action: "MOVE"}}

	Learn(policy, m, true)

	if policy.Actions["MOVE"].Weights[0] != 5.0 {
		t.Fatalf("expected clamp to stay at max 5.0, got %v", policy.Actions["MOVE"].Weights[0])
	}
}

func TestEnumerateShootRequiresValidTrajectory(t *testing.T) {
	m := baseAIMatch()
	m.Entities.AI.Weapons = []string{"weapon.straight.t5"}
	path := optimalPath(m)
	candidates := Enumerate(m, path)

	found := false
	for _, c := range candidates {
		if c.Action == "SHOOT" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a SHOOT candidate on a clear straight line")
	}
}

func TestEnumerateMoveExcludesOccupiedCells(t *testing.T) {
	m := baseAIMatch()
	m.Entities.AI.Pos = grid.Cell{X: 5, Y: 5}
	m.Entities.Walls = []match.Wall{{Pos: grid.Cell{X: 6, Y: 5}, HP: 10}}
	path := optimalPath(m)
	candidates := Enumerate(m, path)

	for _, c := range candidates {
		if c.Action != "MOVE" {
			continue
		}
		to, _ := c.Meta["to"].(grid.Cell)
		if to == (grid.Cell{X: 6, Y: 5}) {
			t.Fatal("expected wall cell excluded from MOVE candidates")
		}
	}
}

func TestRunTurnStopsAtFreeActionCap(t *testing.T) {
	m := baseAIMatch()
	m.Entities.AI.Inventory["heal.small"] = 1
	m.Entities.AI.HP = 50
	policy := DefaultPolicy()
	policy.Epsilon = 0

	result, err := RunTurn(m, policy, 1200, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Actions) > maxFreeActions+1 {
		t.Fatalf("expected at most %d actions before a forced turn-consuming action, got %d", maxFreeActions+1, len(result.Actions))
	}
	if !result.ConsumedTurn {
		t.Fatal("expected the turn to eventually consume")
	}
}
