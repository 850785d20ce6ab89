package worldgen

import (
	"reflect"
	"testing"

	"crab.casa/tactics-engine/grid"
)

func TestGenerateIsDeterministic(t *testing.T) {
	in := Input{Seed: "abc123", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"}
	a, err := Generate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical output for identical input, got:\n%+v\nvs\n%+v", a, b)
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a, _ := Generate(Input{Seed: "seedA", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	b, _ := Generate(Input{Seed: "seedB", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if reflect.DeepEqual(a.Spawn, b.Spawn) && reflect.DeepEqual(a.Resources, b.Resources) {
		t.Fatal("expected different seeds to produce different output")
	}
}

func TestSpawnConstraint(t *testing.T) {
	out, err := Generate(Input{Seed: "spawn-check", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dx := out.Spawn.Player.X - out.Spawn.AI.X
	if dx < 0 {
		dx = -dx
	}
	if out.Constraints.ColumnSeparationOK {
		if dx < 10 {
			t.Fatalf("constraint reported OK but |dx|=%d < 10", dx)
		}
		if out.Spawn.Player.Y == out.Spawn.AI.Y {
			t.Fatal("constraint reported OK but rows match")
		}
	}
}

func TestSpawnsAreInBounds(t *testing.T) {
	size := grid.Size{W: 16, H: 16}
	out, err := Generate(Input{Seed: "bounds", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !size.InBounds(out.Spawn.Player) || !size.InBounds(out.Spawn.AI) {
		t.Fatalf("spawn out of bounds: %+v", out.Spawn)
	}
}

func TestResourceCountsAndSpacing(t *testing.T) {
	out, err := Generate(Input{Seed: "resources", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wh := 16 * 16
	wantTrees := int(0.18*float64(wh) + 0.5)
	wantStones := int(0.14*float64(wh) + 0.5)
	wantHay := int(0.08*float64(wh) + 0.5)
	if len(out.Resources.Trees) != wantTrees {
		t.Fatalf("expected %d trees, got %d", wantTrees, len(out.Resources.Trees))
	}
	if len(out.Resources.Stones) != wantStones {
		t.Fatalf("expected %d stones, got %d", wantStones, len(out.Resources.Stones))
	}
	if len(out.Resources.Hay) != wantHay {
		t.Fatalf("expected %d hay, got %d", wantHay, len(out.Resources.Hay))
	}

	seen := map[grid.Cell]bool{}
	all := append(append(append([]grid.Cell{}, out.Resources.Trees...), out.Resources.Stones...), out.Resources.Hay...)
	for _, c := range all {
		if seen[c] {
			t.Fatalf("duplicate resource cell %v", c)
		}
		seen[c] = true
		if c == out.Spawn.Player || c == out.Spawn.AI {
			t.Fatalf("resource placed on spawn cell %v", c)
		}
	}

	// Cross-kind spacing (spec §4.2): a stone's minSep=2 must also be
	// enforced against cells already placed for a different kind (trees),
	// not just other stones. Hay is placed after stones with its own
	// minSep=1, so hay may sit next to a stone.
	kindOf := map[grid.Cell]string{}
	for _, c := range out.Resources.Trees {
		kindOf[c] = "tree"
	}
	for _, c := range out.Resources.Stones {
		kindOf[c] = "stone"
	}
	placedNoLaterThanStones := append(append([]grid.Cell{}, out.Resources.Trees...), out.Resources.Stones...)
	for _, s := range out.Resources.Stones {
		for _, c := range placedNoLaterThanStones {
			if c == s {
				continue
			}
			if grid.Manhattan(s, c) < 2 {
				t.Fatalf("stone %v is within minSep of %v (%s)", s, c, kindOf[c])
			}
		}
	}
}

func TestLootCountsAndCap(t *testing.T) {
	out, err := Generate(Input{Seed: "loot", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Loot) == 0 {
		t.Fatal("expected at least some loot placed")
	}
	weapons := 0
	healing := false
	for _, l := range out.Loot {
		if len(l.Key) >= 4 && l.Key[:4] == "heal" {
			healing = true
			continue
		}
		weapons++
	}
	if weapons > maxWeapons {
		t.Fatalf("expected at most %d weapons, got %d", maxWeapons, weapons)
	}
	if !healing {
		t.Fatal("pity rule should guarantee at least one healing item")
	}
}

func TestElo1200ForcesGradeOne(t *testing.T) {
	out, err := Generate(Input{Seed: "elo1200force", W: 16, H: 16, ELO: 1200, SeedingVersion: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, l := range out.Loot {
		if len(l.Key) > 7 && l.Key[:7] == "weapon." {
			if l.Key[len(l.Key)-2:] != "t1" {
				t.Fatalf("expected grade-1 weapon at elo 1200, got %q", l.Key)
			}
		}
	}
}
