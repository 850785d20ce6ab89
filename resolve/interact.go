package resolve

import (
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// Interact implements INTERACT (spec §4.4): consumes a turn. Harvests a
// resource of the requested kind within Manhattan distance 1 of the actor.
func Interact(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)

	if p.Pos == nil {
		return Result{}, matcherr.ErrInvalidInput
	}
	pos := grid.Cell{X: p.Pos.X, Y: p.Pos.Y}
	if grid.Manhattan(actor.Pos, pos) > 1 {
		return Result{}, matcherr.ErrInteractTooFar
	}

	var removed bool
	var invKey string
	switch p.Type {
	case "tree":
		m.Resources.Trees, removed = removeOne(m.Resources.Trees, pos)
		invKey = "wood"
	case "stone":
		m.Resources.Stones, removed = removeOne(m.Resources.Stones, pos)
		invKey = "stone"
	case "hay":
		m.Resources.Hay, removed = removeOne(m.Resources.Hay, pos)
		invKey = "food"
	default:
		return Result{}, matcherr.ErrInvalidInput
	}
	if !removed {
		return Result{}, matcherr.ErrNoResourceHere
	}

	if actor.Inventory == nil {
		actor.Inventory = map[string]int{}
	}
	actor.Inventory[invKey]++

	return Result{ConsumeTurn: true, Meta: map[string]any{"gained": invKey}}, nil
}
