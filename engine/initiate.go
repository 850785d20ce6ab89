package engine

import (
	"context"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/ai"
	"crab.casa/tactics-engine/elog"
	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/worldgen"
)

const seedingVersion = "v1.1"

// InitiateInput mirrors POST /initiate_game's body (spec §6).
type InitiateInput struct {
	UserID     string
	Handle     string
	Seed       string
	ELO        int
	Width      int
	Height     int
	FirstActor string // "player" (default) or "ai"
}

// Initiate generates a new world and inserts a fresh Match with version=1,
// status="active", turnIndex=0 (spec "Lifecycle").
func (e *Engine) Initiate(ctx context.Context, logger runtime.Logger, in InitiateInput) (*match.Match, error) {
	logger = e.logger(logger)

	width, height := in.Width, in.Height
	if width <= 0 {
		width = 16
	}
	if height <= 0 {
		height = 16
	}
	elo := in.ELO
	if elo <= 0 {
		elo = 1200
	}
	seed := in.Seed
	if seed == "" {
		seed = newMatchID()
	}

	out, err := worldgen.Generate(worldgen.Input{
		Seed: seed, W: width, H: height, ELO: elo, SeedingVersion: seedingVersion,
	})
	if err != nil {
		return nil, err
	}

	currentActor := match.RolePlayer
	if in.FirstActor == match.RoleAI {
		currentActor = match.RoleAI
	}

	now := time.Now().UnixMilli()
	m := &match.Match{
		ID:             newMatchID(),
		Version:        1,
		Seed:           seed,
		SeedKey:        out.SeedKey,
		SeedingVersion: seedingVersion,
		GridSize:       grid.Size{W: width, H: height},
		ELO:            elo,
		Constraints:    out.Constraints,
		Spawn:          out.Spawn,
		Resources:      out.Resources,
		Loot:           out.Loot,
		Entities: match.EntitiesBlock{
			Player: match.Entity{Pos: out.Spawn.Player, HP: 100, Inventory: map[string]int{}, UserID: in.UserID, Handle: in.Handle},
			AI:     match.Entity{Pos: out.Spawn.AI, HP: 100, Inventory: map[string]int{}},
		},
		TurnIndex:    0,
		CurrentActor: currentActor,
		Status:       match.StatusActive,
		Players: []match.PlayerSlot{
			{Slot: 0, Role: match.RolePlayer, UserID: in.UserID, Handle: in.Handle},
			{Slot: 1, Role: match.RoleAI},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.Matches.Create(ctx, m); err != nil {
		elog.Error(ctx, logger, "create match failed", err)
		return nil, err
	}

	// Load the effective policy once and discard it; nothing is written here.
	// AI turns resolve the policy again when they run, falling back to
	// DefaultPolicy when none is stored (spec §4.5).
	if e.Policies != nil {
		_, _, _ = ai.LoadEffectivePolicy(ctx, e.Policies, in.UserID)
	}

	elog.Success(ctx, logger, "initiate_game")
	return m, nil
}
