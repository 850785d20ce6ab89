package resolve

import "crab.casa/tactics-engine/match"

// SkipTurn implements SKIP_TURN (spec §4.4): consumes a turn with no mutation.
func SkipTurn(m *match.Match, role string, p Params) (Result, error) {
	return Result{ConsumeTurn: true}, nil
}
