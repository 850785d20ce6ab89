package match

import "crab.casa/tactics-engine/grid"

// Clone returns a deep copy of m so resolvers can mutate a working copy and
// discard it on validation failure without touching the version read from
// Store (spec §9 design note (b): "mutate a clone, CAS the clone back").
func Clone(m *Match) *Match {
	if m == nil {
		return nil
	}
	out := *m

	out.Constraints.Notes = append([]string(nil), m.Constraints.Notes...)

	out.Resources.Trees = append([]grid.Cell(nil), m.Resources.Trees...)
	out.Resources.Stones = append([]grid.Cell(nil), m.Resources.Stones...)
	out.Resources.Hay = append([]grid.Cell(nil), m.Resources.Hay...)

	out.Loot = append([]Loot(nil), m.Loot...)

	out.Entities.Player = cloneEntity(m.Entities.Player)
	out.Entities.AI = cloneEntity(m.Entities.AI)
	out.Entities.Walls = append([]Wall(nil), m.Entities.Walls...)

	out.ActionHistory = append([]ActionLogEntry(nil), m.ActionHistory...)
	out.Players = append([]PlayerSlot(nil), m.Players...)

	return &out
}

func cloneEntity(e Entity) Entity {
	out := e
	out.Weapons = append([]string(nil), e.Weapons...)
	if e.Inventory != nil {
		out.Inventory = make(map[string]int, len(e.Inventory))
		for k, v := range e.Inventory {
			out.Inventory[k] = v
		}
	}
	return out
}
