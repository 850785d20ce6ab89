package resolve

import (
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/recipes"
)

// CraftWeapon implements CRAFT_WEAPON (spec §4.4): a free action. Costs are
// checked atomically before any decrement; adding an already-owned weapon
// key is a no-op success (set semantics).
func CraftWeapon(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)

	recipe, err := recipes.MustGet(p.RecipeKey)
	if err != nil {
		return Result{}, err
	}
	if recipe.Kind != "weapon" || !recipe.Enabled {
		return Result{}, matcherr.ErrUnknownRecipe
	}

	if !canAfford(actor, recipe.Costs) {
		return Result{}, matcherr.ErrInsufficientResources
	}
	payCosts(actor, recipe.Costs)
	actor.AddWeapon(p.RecipeKey)

	return Result{ConsumeTurn: false, Meta: map[string]any{"weaponKey": p.RecipeKey}}, nil
}

func canAfford(actor *match.Entity, costs recipes.Costs) bool {
	return actor.Inventory["wood"] >= costs.Wood &&
		actor.Inventory["stone"] >= costs.Stone &&
		actor.Inventory["food"] >= costs.Food
}

func payCosts(actor *match.Entity, costs recipes.Costs) {
	if actor.Inventory == nil {
		actor.Inventory = map[string]int{}
	}
	actor.Inventory["wood"] -= costs.Wood
	actor.Inventory["stone"] -= costs.Stone
	actor.Inventory["food"] -= costs.Food
}
