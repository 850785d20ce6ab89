package ai

import (
	"sort"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/los"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/recipes"
	"crab.casa/tactics-engine/resolve"
)

const (
	wallRecipeKey      = "wall.wood"
	starterWeaponKey   = "weapon.straight.t1"
	underThreatMaxDist = 6
)

var moveDirs = [4]grid.Cell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

var healOrder = []string{"heal.major", "heal.large", "heal.medium", "heal.small"}

// Enumerate produces every legal candidate for the AI's current decision
// point (spec §4.5). path is the AI's A*-computed optimal path to the
// opponent (nil if unreachable), used by MOVE's isOnPath feature.
func Enumerate(m *match.Match, path []grid.Cell) []Candidate {
	var out []Candidate
	out = append(out, shootCandidates(m)...)
	out = append(out, moveCandidates(m)...)
	if c, ok := healCandidate(m); ok {
		out = append(out, c)
	}
	if c, ok := craftWallCandidate(m); ok {
		out = append(out, c)
	}
	if c, ok := craftWeaponCandidate(m); ok {
		out = append(out, c)
	}
	out = append(out, interactCandidates(m)...)
	return out
}

func shootCandidates(m *match.Match) []Candidate {
	ai := &m.Entities.AI
	opp := m.Entities.Player
	walls := wallPositions(m)

	var out []Candidate
	for _, key := range ai.Weapons {
		recipe, ok := recipes.Get(key)
		if !ok || recipe.Kind != "weapon" {
			continue
		}
		o := recipe.Output
		dist := grid.Manhattan(ai.Pos, opp.Pos)
		if dist < 1 || dist > o.Range {
			continue
		}
		if !los.TrajectoryValid(o.WeaponClass, ai.Pos, opp.Pos, dist, o.Range, o.ShootsOverWalls, walls) {
			continue
		}
		target := resolve.Cell{X: opp.Pos.X, Y: opp.Pos.Y}
		out = append(out, Candidate{
			Action: "SHOOT",
			Params: resolve.Params{WeaponKey: key, Target: &target},
			Meta:   map[string]any{"damage": o.Damage, "dist": dist},
		})
	}
	return out
}

func moveCandidates(m *match.Match) []Candidate {
	ai := m.Entities.AI
	walls := wallPositions(m)

	var out []Candidate
	for _, d := range moveDirs {
		to := grid.Cell{X: ai.Pos.X + d.X, Y: ai.Pos.Y + d.Y}
		if !m.GridSize.InBounds(to) {
			continue
		}
		if grid.Occupied(to, m.Entities.Player.Pos, m.Entities.AI.Pos, walls, false, false) {
			continue
		}
		target := resolve.Cell{X: to.X, Y: to.Y}
		out = append(out, Candidate{
			Action: "MOVE",
			Params: resolve.Params{To: &target},
			Meta:   map[string]any{"to": to},
		})
	}
	return out
}

func healCandidate(m *match.Match) (Candidate, bool) {
	ai := m.Entities.AI
	if ai.HP > 70 {
		return Candidate{}, false
	}
	for _, key := range healOrder {
		if ai.Inventory[key] > 0 {
			return Candidate{Action: "HEAL", Params: resolve.Params{Key: key}}, true
		}
	}
	return Candidate{}, false
}

func craftWallCandidate(m *match.Match) (Candidate, bool) {
	ai := m.Entities.AI
	opp := m.Entities.Player
	recipe, ok := recipes.Get(wallRecipeKey)
	if !ok {
		return Candidate{}, false
	}
	if ai.Inventory["wood"] < recipe.Costs.Wood || ai.Inventory["stone"] < recipe.Costs.Stone {
		return Candidate{}, false
	}
	dist := grid.Manhattan(ai.Pos, opp.Pos)
	if dist > underThreatMaxDist || !grid.IsStraight(ai.Pos, opp.Pos) {
		return Candidate{}, false
	}
	if grid.WallBlocksLine(wallPositions(m), ai.Pos, opp.Pos) {
		return Candidate{}, false
	}
	step := stepToward(ai.Pos, opp.Pos)
	if !m.GridSize.InBounds(step) {
		return Candidate{}, false
	}
	pos := resolve.Cell{X: step.X, Y: step.Y}
	return Candidate{
		Action: "CRAFT_WALL",
		Params: resolve.Params{RecipeKey: wallRecipeKey, Pos: &pos},
		Meta:   map[string]any{"underThreat": true, "dist": dist},
	}, true
}

func craftWeaponCandidate(m *match.Match) (Candidate, bool) {
	ai := m.Entities.AI
	if hasRangedWeapon(ai.Weapons) {
		return Candidate{}, false
	}
	recipe, ok := recipes.Get(starterWeaponKey)
	if !ok {
		return Candidate{}, false
	}
	if ai.Inventory["wood"] < recipe.Costs.Wood || ai.Inventory["stone"] < recipe.Costs.Stone {
		return Candidate{}, false
	}
	return Candidate{Action: "CRAFT_WEAPON", Params: resolve.Params{RecipeKey: starterWeaponKey}}, true
}

func interactCandidates(m *match.Match) []Candidate {
	ai := m.Entities.AI
	if ai.Inventory["wood"]+ai.Inventory["stone"] >= 3 {
		return nil
	}
	var out []Candidate
	add := func(kind string, cells []grid.Cell) {
		for _, c := range cells {
			if grid.Manhattan(ai.Pos, c) <= 1 {
				pos := resolve.Cell{X: c.X, Y: c.Y}
				out = append(out, Candidate{Action: "INTERACT", Params: resolve.Params{Type: kind, Pos: &pos}})
			}
		}
	}
	add("tree", m.Resources.Trees)
	add("stone", m.Resources.Stones)
	add("hay", m.Resources.Hay)
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

func hasRangedWeapon(weapons []string) bool {
	for _, key := range weapons {
		if recipe, ok := recipes.Get(key); ok && recipe.Kind == "weapon" && recipe.Output.WeaponClass != "melee" {
			return true
		}
	}
	return false
}

func stepToward(from, to grid.Cell) grid.Cell {
	step := from
	switch {
	case to.X > from.X:
		step.X++
	case to.X < from.X:
		step.X--
	case to.Y > from.Y:
		step.Y++
	case to.Y < from.Y:
		step.Y--
	}
	return step
}

func wallPositions(m *match.Match) []grid.Cell {
	out := make([]grid.Cell, len(m.Entities.Walls))
	for i, w := range m.Entities.Walls {
		out[i] = w.Pos
	}
	return out
}
