package resolve

import (
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/recipes"
)

// CraftWall implements CRAFT_WALL (spec §4.4): consumes a turn. The target
// cell must be within the recipe's maxPlaceDistance, unoccupied, and free
// of an existing wall.
func CraftWall(m *match.Match, role string, p Params) (Result, error) {
	actor := m.Actor(role)

	recipe, err := recipes.MustGet(p.RecipeKey)
	if err != nil {
		return Result{}, err
	}
	if recipe.Kind != "wall" || !recipe.Enabled || recipe.Output.Wall == nil {
		return Result{}, matcherr.ErrUnknownRecipe
	}
	if p.Pos == nil {
		return Result{}, matcherr.ErrInvalidInput
	}
	pos := grid.Cell{X: p.Pos.X, Y: p.Pos.Y}

	if !m.GridSize.InBounds(pos) {
		return Result{}, matcherr.ErrOutOfBounds
	}
	if grid.Manhattan(actor.Pos, pos) > recipe.Output.Wall.MaxPlaceDistance {
		return Result{}, matcherr.ErrPlaceTooFar
	}
	if grid.Occupied(pos, m.Entities.Player.Pos, m.Entities.AI.Pos, nil, false, false) {
		return Result{}, matcherr.ErrCellOccupied
	}
	for _, w := range m.Entities.Walls {
		if w.Pos == pos {
			return Result{}, matcherr.ErrWallAlreadyThere
		}
	}

	if !canAfford(actor, recipe.Costs) {
		return Result{}, matcherr.ErrInsufficientResources
	}
	payCosts(actor, recipe.Costs)

	m.Entities.Walls = append(m.Entities.Walls, match.Wall{Pos: pos, HP: recipe.Output.Wall.HP})

	return Result{ConsumeTurn: true, Meta: map[string]any{"pos": pos}}, nil
}
