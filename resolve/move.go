package resolve

import (
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// Move implements MOVE (spec §4.4): consumes a turn, requires an in-bounds,
// unoccupied target within range (1, or 2 under effects.move2), then
// auto-picks up any co-located resource and loot.
func Move(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)
	opp := m.Opponent(role)

	target := resolveTarget(actor.Pos, p)
	if !m.GridSize.InBounds(target) {
		return Result{}, matcherr.ErrOutOfBounds
	}

	maxDist := 1
	if actor.Effects.Move2 {
		maxDist = 2
	}
	if grid.Manhattan(actor.Pos, target) > maxDist {
		return Result{}, matcherr.ErrTooFar
	}

	wallCells := wallPositions(m)
	if grid.Occupied(target, m.Entities.Player.Pos, m.Entities.AI.Pos, wallCells, role == match.RolePlayer, role == match.RoleAI) {
		return Result{}, matcherr.ErrCellOccupied
	}

	actor.Pos = target
	_ = opp

	meta := map[string]any{}
	pickedResources := pickupResources(m, actor, target)
	if len(pickedResources) > 0 {
		meta["pickedResources"] = pickedResources
	}
	pickedLoot := pickupLoot(m, actor, target)
	if pickedLoot != "" {
		meta["pickedLoot"] = pickedLoot
	}

	return Result{ConsumeTurn: true, Meta: meta}, nil
}

func resolveTarget(pos grid.Cell, p Params) grid.Cell {
	if p.To != nil {
		return grid.Cell{X: p.To.X, Y: p.To.Y}
	}
	return grid.Cell{X: pos.X + p.Dx, Y: pos.Y + p.Dy}
}

func wallPositions(m *match.Match) []grid.Cell {
	out := make([]grid.Cell, len(m.Entities.Walls))
	for i, w := range m.Entities.Walls {
		out[i] = w.Pos
	}
	return out
}

// pickupResources removes and reports any resource cells at pos, one per
// type (trees, stones, hay), crediting the moving actor's inventory.
func pickupResources(m *match.Match, actor *match.Entity, pos grid.Cell) []string {
	if actor.Inventory == nil {
		actor.Inventory = map[string]int{}
	}
	var picked []string
	var ok bool
	if m.Resources.Trees, ok = removeOne(m.Resources.Trees, pos); ok {
		actor.Inventory["wood"]++
		picked = append(picked, "wood")
	}
	if m.Resources.Stones, ok = removeOne(m.Resources.Stones, pos); ok {
		actor.Inventory["stone"]++
		picked = append(picked, "stone")
	}
	if m.Resources.Hay, ok = removeOne(m.Resources.Hay, pos); ok {
		actor.Inventory["food"]++
		picked = append(picked, "food")
	}
	return picked
}

func removeOne(cells []grid.Cell, pos grid.Cell) ([]grid.Cell, bool) {
	for i, c := range cells {
		if c == pos {
			return append(cells[:i:i], cells[i+1:]...), true
		}
	}
	return cells, false
}

func pickupLoot(m *match.Match, actor *match.Entity, pos grid.Cell) string {
	for i, l := range m.Loot {
		if l.Pos == pos {
			key := l.Key
			m.Loot = append(m.Loot[:i:i], m.Loot[i+1:]...)
			if isWeaponKey(key) {
				actor.AddWeapon(key)
			} else {
				if actor.Inventory == nil {
					actor.Inventory = map[string]int{}
				}
				actor.Inventory[key]++
			}
			return key
		}
	}
	return ""
}

func isWeaponKey(key string) bool {
	return len(key) >= 7 && key[:7] == "weapon."
}
