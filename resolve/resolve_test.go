package resolve

import (
	"testing"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
)

func baseMatch() *match.Match {
	m := &match.Match{
		GridSize: grid.Size{W: 16, H: 16},
		Entities: match.EntitiesBlock{
			Player: match.Entity{Pos: grid.Cell{X: 2, Y: 5}, HP: 100, Inventory: map[string]int{}},
			AI:     match.Entity{Pos: grid.Cell{X: 10, Y: 5}, HP: 50, Inventory: map[string]int{}},
		},
	}
	return m
}

func TestShootStraightKills(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Weapons = []string{"weapon.straight.t5"}
	res, err := Shoot(m, match.RolePlayer, Params{WeaponKey: "weapon.straight.t5", Target: &Cell{X: 10, Y: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ConsumeTurn {
		t.Fatal("SHOOT must consume a turn")
	}
	if m.Entities.AI.HP != 0 {
		t.Fatalf("expected AI HP clamped to 0, got %d", m.Entities.AI.HP)
	}
	if m.Status != match.StatusEnded || m.Winner != match.RolePlayer {
		t.Fatalf("expected game ended with player as winner, got status=%s winner=%s", m.Status, m.Winner)
	}
}

func TestShootMissLeavesHPUnchanged(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Weapons = []string{"weapon.straight.t5"}
	_, err := Shoot(m, match.RolePlayer, Params{WeaponKey: "weapon.straight.t5", Target: &Cell{X: 9, Y: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Entities.AI.HP != 50 {
		t.Fatalf("expected AI HP unchanged at 50, got %d", m.Entities.AI.HP)
	}
}

func TestShootWallBlocksStraight(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Weapons = []string{"weapon.straight.t5"}
	m.Entities.Walls = []match.Wall{{Pos: grid.Cell{X: 6, Y: 5}, HP: 30}}
	_, err := Shoot(m, match.RolePlayer, Params{WeaponKey: "weapon.straight.t5", Target: &Cell{X: 10, Y: 5}})
	if err == nil {
		t.Fatal("expected wall to block the straight trajectory")
	}
}

func TestMoveTooFarRejected(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Pos = grid.Cell{X: 4, Y: 4}
	_, err := Move(m, match.RolePlayer, Params{To: &Cell{X: 6, Y: 4}})
	if err == nil {
		t.Fatal("expected move-too-far rejection")
	}
	if m.Entities.Player.Pos != (grid.Cell{X: 4, Y: 4}) {
		t.Fatal("rejected move must not mutate position")
	}
}

func TestCraftWeaponIsFreeAndPaysExactCosts(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Inventory = map[string]int{"wood": 8, "stone": 3}
	res, err := CraftWeapon(m, match.RolePlayer, Params{RecipeKey: "weapon.straight.t3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ConsumeTurn {
		t.Fatal("CRAFT_WEAPON must be a free action")
	}
	if !m.Entities.Player.HasWeapon("weapon.straight.t3") {
		t.Fatal("expected weapon to be added")
	}
	if m.Entities.Player.Inventory["wood"] != 0 || m.Entities.Player.Inventory["stone"] != 0 {
		t.Fatalf("expected costs fully paid, got %+v", m.Entities.Player.Inventory)
	}
}

func TestCraftWeaponInsufficientResourcesNoDecrement(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Inventory = map[string]int{"wood": 1}
	before := m.Entities.Player.Inventory["wood"]
	_, err := CraftWeapon(m, match.RolePlayer, Params{RecipeKey: "weapon.straight.t3"})
	if err == nil {
		t.Fatal("expected insufficient-resources error")
	}
	if m.Entities.Player.Inventory["wood"] != before {
		t.Fatal("rejected craft must not decrement resources")
	}
}

func TestCraftWeaponDuplicateIsNoOpSuccess(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Weapons = []string{"weapon.straight.t1"}
	m.Entities.Player.Inventory = map[string]int{"wood": 2}
	_, err := CraftWeapon(m, match.RolePlayer, Params{RecipeKey: "weapon.straight.t1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Entities.Player.Weapons) != 1 {
		t.Fatalf("expected set semantics, got %v", m.Entities.Player.Weapons)
	}
}

func TestHealInventoryItemClampsTo100(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.HP = 90
	m.Entities.Player.Inventory["heal.major"] = 1
	res, err := Heal(m, match.RolePlayer, Params{Key: "heal.major"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ConsumeTurn {
		t.Fatal("HEAL must be a free action")
	}
	if m.Entities.Player.HP != 100 {
		t.Fatalf("expected HP clamped to 100, got %d", m.Entities.Player.HP)
	}
	if m.Entities.Player.Inventory["heal.major"] != 0 {
		t.Fatal("expected the consumed item to decrement")
	}
}

func TestHealRecipeModePaysCosts(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.HP = 50
	m.Entities.Player.Inventory["food"] = 5
	_, err := Heal(m, match.RolePlayer, Params{RecipeKey: "recipe.heal.basic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Entities.Player.HP <= 50 {
		t.Fatal("expected HP to increase")
	}
	if m.Entities.Player.Inventory["food"] != 3 {
		t.Fatalf("expected the recipe's 2 food to be paid, got %d", m.Entities.Player.Inventory["food"])
	}
}

func TestInteractHarvestsAdjacentResource(t *testing.T) {
	m := baseMatch()
	m.Resources.Trees = []grid.Cell{{X: 3, Y: 5}}
	res, err := Interact(m, match.RolePlayer, Params{Type: "tree", Pos: &Cell{X: 3, Y: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ConsumeTurn {
		t.Fatal("INTERACT must consume a turn")
	}
	if len(m.Resources.Trees) != 0 {
		t.Fatal("expected the tree to be removed")
	}
	if m.Entities.Player.Inventory["wood"] != 1 {
		t.Fatalf("expected wood incremented, got %d", m.Entities.Player.Inventory["wood"])
	}
}

func TestInteractTooFarRejected(t *testing.T) {
	m := baseMatch()
	m.Resources.Trees = []grid.Cell{{X: 5, Y: 5}}
	_, err := Interact(m, match.RolePlayer, Params{Type: "tree", Pos: &Cell{X: 5, Y: 5}})
	if err == nil {
		t.Fatal("expected interact-too-far rejection")
	}
}

func TestSkipTurnConsumesWithNoMutation(t *testing.T) {
	m := baseMatch()
	beforePos, beforeHP := m.Entities.Player.Pos, m.Entities.Player.HP
	res, err := SkipTurn(m, match.RolePlayer, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ConsumeTurn {
		t.Fatal("SKIP_TURN must consume a turn")
	}
	if m.Entities.Player.Pos != beforePos || m.Entities.Player.HP != beforeHP {
		t.Fatal("SKIP_TURN must not mutate entities")
	}
}

func TestMoveAutoPickupResourceAndLoot(t *testing.T) {
	m := baseMatch()
	m.Entities.Player.Pos = grid.Cell{X: 3, Y: 5}
	m.Resources.Trees = []grid.Cell{{X: 4, Y: 5}}
	m.Loot = []match.Loot{{Pos: grid.Cell{X: 4, Y: 5}, Key: "heal.small"}}
	_, err := Move(m, match.RolePlayer, Params{Dx: 1, Dy: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Resources.Trees) != 0 {
		t.Fatal("expected co-located resource to be auto-picked-up")
	}
	if len(m.Loot) != 0 {
		t.Fatal("expected co-located loot to be auto-picked-up")
	}
	if m.Entities.Player.Inventory["wood"] != 1 {
		t.Fatal("expected wood incremented from auto-pickup")
	}
	if m.Entities.Player.Inventory["heal.small"] != 1 {
		t.Fatal("expected heal.small incremented from auto-pickup")
	}
}
