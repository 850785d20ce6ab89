package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMatchStoreCreateReadWriteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ms := db.MatchStore()
	ctx := context.Background()

	m := &match.Match{
		ID:       "m1",
		Version:  1,
		GridSize: grid.Size{W: 16, H: 16},
		Status:   match.StatusActive,
		Players:  []match.PlayerSlot{{Slot: 0, Role: match.RolePlayer, UserID: "u1"}},
	}
	if err := ms.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, version, err := ms.Read(ctx, "m1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if version != 1 || got.ID != "m1" {
		t.Fatalf("unexpected read result: %+v v=%d", got, version)
	}

	got.TurnIndex = 5
	newVersion, err := ms.Write(ctx, "m1", got, version)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if newVersion != 2 {
		t.Fatalf("expected version 2, got %d", newVersion)
	}
}

func TestMatchStoreWriteRejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	ms := db.MatchStore()
	ctx := context.Background()

	m := &match.Match{ID: "m2", Version: 1, Status: match.StatusActive}
	if err := ms.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := ms.Write(ctx, "m2", m, 1); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := ms.Write(ctx, "m2", m, 1); err == nil {
		t.Fatal("expected a version-mismatch error on the stale write")
	}
}

func TestMatchStoreListActiveByPlayerFiltersByOwnerAndStatus(t *testing.T) {
	db := newTestDB(t)
	ms := db.MatchStore()
	ctx := context.Background()

	active := &match.Match{ID: "a1", Version: 1, Status: match.StatusActive,
		Players: []match.PlayerSlot{{Role: match.RolePlayer, UserID: "u1"}}}
	ended := &match.Match{ID: "a2", Version: 1, Status: match.StatusEnded,
		Players: []match.PlayerSlot{{Role: match.RolePlayer, UserID: "u1"}}}
	other := &match.Match{ID: "a3", Version: 1, Status: match.StatusActive,
		Players: []match.PlayerSlot{{Role: match.RolePlayer, UserID: "u2"}}}

	for _, m := range []*match.Match{active, ended, other} {
		if err := ms.Create(ctx, m); err != nil {
			t.Fatalf("create %s: %v", m.ID, err)
		}
	}

	got, err := ms.ListActiveByPlayer(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected only a1, got %+v", got)
	}
}

func TestPolicyStoreSaveRejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	ps := db.PolicyStore()
	ctx := context.Background()

	p := &match.AIPolicy{Scope: "player", UserID: "u1", Epsilon: 0.1, Actions: map[string]match.ActionWeights{}}
	v1, err := ps.Save(ctx, "u1", p, 0)
	if err != nil || v1 != 1 {
		t.Fatalf("initial save: v=%d err=%v", v1, err)
	}
	if _, err := ps.Save(ctx, "u1", p, 0); err == nil {
		t.Fatal("expected stale-version save to fail")
	}
	if _, err := ps.Save(ctx, "u1", p, v1); err != nil {
		t.Fatalf("expected current-version save to succeed: %v", err)
	}
}

func TestUserStoreCreatesOnFirstRead(t *testing.T) {
	db := newTestDB(t)
	us := db.UserStore()
	ctx := context.Background()

	profile, err := us.GetProfile(ctx, "newuser")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.ELO != 1200 {
		t.Fatalf("expected default elo 1200, got %d", profile.ELO)
	}

	elo, err := us.UpdateELO(ctx, "newuser", 10)
	if err != nil {
		t.Fatalf("update elo: %v", err)
	}
	if elo != 1210 {
		t.Fatalf("expected 1210, got %d", elo)
	}
}
