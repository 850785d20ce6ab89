package ai

import (
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
)

// retreatHPThreshold is 70 for elo>1500, else 60 (spec §4.5 MOVE retreat feature).
func retreatHPThreshold(elo int) int {
	if elo > 1500 {
		return 70
	}
	return 60
}

// ExtractFeatures fills in c.Features for candidate c given the current
// snapshot, elo, and the AI's optimal path to the opponent (spec §4.5).
// Action kinds outside MOVE/SHOOT/CRAFT_WALL contribute no features.
func ExtractFeatures(m *match.Match, elo int, path []grid.Cell, c Candidate) []float64 {
	ai := m.Entities.AI
	opp := m.Entities.Player

	switch c.Action {
	case "MOVE":
		to, _ := c.Meta["to"].(grid.Cell)
		oldDist := grid.Manhattan(ai.Pos, opp.Pos)
		newDist := grid.Manhattan(to, opp.Pos)
		approach := float64(oldDist - newDist)

		getCover := 0.0
		for _, w := range m.Entities.Walls {
			if grid.Manhattan(w.Pos, to) == 1 {
				getCover = 1
				break
			}
		}

		retreat := 0.0
		if ai.HP <= retreatHPThreshold(elo) && newDist > oldDist {
			retreat = 1
		}

		getPickup := 0.0
		if cellHasPickup(m, to) {
			getPickup = 1
		}

		isOnPath := 0.0
		if len(path) > 1 && to == path[1] {
			isOnPath = 1
		}

		return []float64{approach, getCover, retreat, getPickup, isOnPath}

	case "SHOOT":
		damage, _ := c.Meta["damage"].(int)
		dist, _ := c.Meta["dist"].(int)
		canKill := 0.0
		if float64(damage) >= float64(opp.HP) {
			canKill = 1
		}
		// Only trajectory-valid shots are ever enumerated as candidates
		// (see shootCandidates), so hasLOS is always true here.
		return []float64{float64(damage), float64(dist) / 16.0, canKill, 1}

	case "CRAFT_WALL":
		underThreat := 0.0
		if _, ok := c.Meta["underThreat"]; ok {
			underThreat = 1
		}
		hasLOS := 0.0
		if grid.IsStraight(ai.Pos, opp.Pos) && !grid.WallBlocksLine(wallPositions(m), ai.Pos, opp.Pos) {
			hasLOS = 1
		}
		return []float64{underThreat, hasLOS, 0}

	default:
		return nil
	}
}

func cellHasPickup(m *match.Match, c grid.Cell) bool {
	for _, l := range m.Loot {
		if l.Pos == c {
			return true
		}
	}
	for _, t := range m.Resources.Trees {
		if t == c {
			return true
		}
	}
	for _, s := range m.Resources.Stones {
		if s == c {
			return true
		}
	}
	for _, h := range m.Resources.Hay {
		if h == c {
			return true
		}
	}
	return false
}
