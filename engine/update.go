package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/ai"
	"crab.casa/tactics-engine/elog"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/resolve"
)

// UpdateInput mirrors POST /update's body (spec §6).
type UpdateInput struct {
	MatchID         string
	Actor           string // "player" (only valid external caller role)
	ActionType      string
	Params          resolve.Params
	SnapshotVersion *int // optional optimistic-lock check against the loaded version
}

// Update is the orchestrator's core operation (spec §4.6): dispatches one
// player action, runs the AI's reply if the turn passed to it, and persists
// the result with CAS. No retry happens at this layer — a version mismatch
// is reported to the caller as a conflict (spec §4.6 step 11).
func (e *Engine) Update(ctx context.Context, logger runtime.Logger, in UpdateInput) (*match.Match, error) {
	logger = e.logger(logger)

	// Advisory lock around the load -> resolve -> CAS window cuts retry rate
	// under contention (spec §5). It is never the correctness mechanism —
	// storage-layer CAS is — so a miss or a nil Locker still proceeds.
	if e.Lock != nil {
		if handle, ok, lerr := e.Lock.TryLock(ctx, in.MatchID); lerr == nil && ok {
			defer handle.Unlock(ctx)
		}
	}

	loaded, version, err := e.Matches.Read(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if in.SnapshotVersion != nil && *in.SnapshotVersion != version {
		return nil, matcherr.ErrVersionMismatch
	}
	if loaded.Status != match.StatusActive {
		return nil, matcherr.ErrMatchEnded
	}

	resolver, ok := resolve.Dispatch[in.ActionType]
	if !ok {
		return nil, matcherr.ErrUnknownAction
	}

	consuming := consumesTurn(in.ActionType)
	if consuming && loaded.CurrentActor != in.Actor {
		return nil, matcherr.ErrWrongTurn
	}

	working := match.Clone(loaded)

	result, err := resolver(working, in.Actor, in.Params)
	if err != nil {
		return nil, err
	}
	working.ActionHistory = append(working.ActionHistory, match.ActionLogEntry{Actor: in.Actor, Action: in.ActionType})

	if working.Status != match.StatusActive {
		return e.finishUpdate(ctx, logger, in.MatchID, working, version, "victory")
	}

	if result.ConsumeTurn {
		working.TurnIndex++
		working.CurrentActor = match.Opposite(working.CurrentActor)
	}

	if working.CurrentActor == match.RoleAI && working.Status == match.StatusActive {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		policy, _, perr := ai.LoadEffectivePolicy(ctx, e.Policies, working.PlayerSlotFor(match.RolePlayer).UserID)
		if perr != nil {
			elog.Error(ctx, logger, "update: policy load failed, using default", perr)
			policy = ai.DefaultPolicy()
		}

		turnResult, terr := ai.RunTurn(working, policy, working.ELO, rng)
		if terr != nil {
			elog.Error(ctx, logger, "update: AI turn failed", terr)
			return nil, terr
		}
		for _, c := range turnResult.Actions {
			working.ActionHistory = append(working.ActionHistory, match.ActionLogEntry{Actor: match.RoleAI, Action: c.Action})
		}

		if turnResult.Ended {
			return e.finishUpdate(ctx, logger, in.MatchID, working, version, "victory")
		}
		if turnResult.ConsumedTurn {
			working.TurnIndex++
			working.CurrentActor = match.Opposite(working.CurrentActor)
		}
	}

	working.UpdatedAt = time.Now().UnixMilli()
	newVersion, err := e.Matches.Write(ctx, in.MatchID, working, version)
	if err != nil {
		return nil, err
	}
	working.Version = newVersion

	elog.Success(ctx, logger, "update")
	return working, nil
}

// finishUpdate persists the ended snapshot and runs the terminal pipeline.
func (e *Engine) finishUpdate(ctx context.Context, logger runtime.Logger, matchID string, working *match.Match, expectedVersion int, reason string) (*match.Match, error) {
	working.UpdatedAt = time.Now().UnixMilli()
	newVersion, err := e.Matches.Write(ctx, matchID, working, expectedVersion)
	if err != nil {
		return nil, err
	}
	working.Version = newVersion

	if _, err := e.terminalPipeline(ctx, logger, working, reason); err != nil {
		return nil, err
	}
	elog.Success(ctx, logger, "update_terminal")
	return working, nil
}

func consumesTurn(actionType string) bool {
	switch actionType {
	case "MOVE", "SHOOT", "CRAFT_WALL", "INTERACT", "SKIP_TURN":
		return true
	default:
		return false
	}
}
