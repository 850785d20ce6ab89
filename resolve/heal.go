package resolve

import (
	"strings"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/recipes"
	"crab.casa/tactics-engine/worldgen"
)

// Heal implements HEAL (spec §4.4): a free action with two modes — consume
// an inventory "heal.<size>" item for its fixed table amount, or pay a
// healing recipe's costs for its output.heal amount. HP is clamped to
// [0,100] either way.
func Heal(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)

	if strings.HasPrefix(p.Key, "heal.") {
		if actor.Inventory[p.Key] <= 0 {
			return Result{}, matcherr.ErrInsufficientResources
		}
		size := strings.TrimPrefix(p.Key, "heal.")
		amount := worldgen.HealingAmount(size)
		actor.Inventory[p.Key]--
		before := actor.HP
		actor.HP += amount
		actor.ClampHP()
		return Result{ConsumeTurn: false, Meta: map[string]any{"healed": actor.HP - before}}, nil
	}

	recipe, err := recipes.MustGet(p.RecipeKey)
	if err != nil {
		return Result{}, err
	}
	if recipe.Kind != "healing" || !recipe.Enabled {
		return Result{}, matcherr.ErrUnknownRecipe
	}
	if !canAfford(actor, recipe.Costs) {
		return Result{}, matcherr.ErrInsufficientResources
	}
	payCosts(actor, recipe.Costs)
	before := actor.HP
	actor.HP += recipe.Output.Heal
	actor.ClampHP()

	return Result{ConsumeTurn: false, Meta: map[string]any{"healed": actor.HP - before}}, nil
}
