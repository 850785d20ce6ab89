package resolve

import (
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/los"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/recipes"
)

// Shoot implements SHOOT (spec §4.4): consumes a turn, requires an equipped
// weapon, an in-bounds target within [1,range], and a trajectory valid for
// the weapon's class. Damage applies only if target lands on the opponent.
func Shoot(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)
	opp := m.Opponent(role)

	if p.WeaponKey == "" || !actor.HasWeapon(p.WeaponKey) {
		return Result{}, matcherr.ErrWeaponNotEquipped
	}
	recipe, err := recipes.MustGet(p.WeaponKey)
	if err != nil {
		return Result{}, err
	}
	if recipe.Kind != "weapon" {
		return Result{}, matcherr.ErrWeaponNotEquipped
	}

	if p.Target == nil {
		return Result{}, matcherr.ErrInvalidInput
	}
	target := grid.Cell{X: p.Target.X, Y: p.Target.Y}
	if !m.GridSize.InBounds(target) {
		return Result{}, matcherr.ErrOutOfBounds
	}

	out := recipe.Output
	dist := grid.Manhattan(actor.Pos, target)
	if dist < 1 || dist > out.Range {
		return Result{}, matcherr.ErrNoTrajectory
	}

	if !los.TrajectoryValid(out.WeaponClass, actor.Pos, target, dist, out.Range, out.ShootsOverWalls, wallPositions(m)) {
		return Result{}, matcherr.ErrNoTrajectory
	}

	meta := map[string]any{"weaponKey": p.WeaponKey, "target": target}

	if target == opp.Pos {
		before := opp.HP
		opp.HP -= out.Damage
		opp.ClampHP()
		meta["hit"] = true
		meta["damage"] = before - opp.HP
		if opp.HP <= 0 {
			m.Status = match.StatusEnded
			m.Winner = role
			meta["ended"] = true
		}
	} else {
		meta["hit"] = false
		meta["damage"] = 0
	}

	return Result{ConsumeTurn: true, Meta: meta}, nil
}
