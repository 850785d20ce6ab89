package recipes

import "testing"

func TestLoad(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
}

func TestGetKnownWeapon(t *testing.T) {
	r, ok := Get("weapon.straight.t5")
	if !ok {
		t.Fatal("expected weapon.straight.t5 to exist")
	}
	if r.Kind != "weapon" || r.Output.WeaponClass != "straight" || r.Output.Grade != 5 {
		t.Fatalf("unexpected recipe shape: %+v", r)
	}
	if r.Output.Range < 8 || r.Output.Damage < 40 {
		t.Fatalf("expected a strong top-grade weapon, got %+v", r.Output)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("does.not.exist"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestListFilterByKind(t *testing.T) {
	walls := List(Filter{Kind: "wall"})
	if len(walls) == 0 {
		t.Fatal("expected at least one wall recipe")
	}
	for _, r := range walls {
		if r.Kind != "wall" || r.Output.Wall == nil {
			t.Fatalf("expected wall output, got %+v", r)
		}
	}
}

func TestListFilterByGradeRange(t *testing.T) {
	grade1 := List(Filter{Kind: "weapon", MinGrade: 1, MaxGrade: 1})
	for _, r := range grade1 {
		if r.Output.Grade != 1 {
			t.Fatalf("expected only grade 1, got %+v", r)
		}
	}
	if len(grade1) != 5 {
		t.Fatalf("expected 5 weapon classes at grade 1, got %d", len(grade1))
	}
}

func TestHealingRecipesDontCollideWithInventoryPrefix(t *testing.T) {
	for _, r := range List(Filter{Kind: "healing"}) {
		if len(r.Key) >= 5 && r.Key[:5] == "heal." {
			t.Fatalf("craftable healing recipe %q collides with the heal.* inventory-consumable prefix", r.Key)
		}
	}
}
