package engine

import (
	"context"
	"errors"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/ai"
	"crab.casa/tactics-engine/elog"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/worldgen"
)

// terminalPipeline runs the four steps spec §4.6 requires once a match ends:
// (a) ELO adjust, (b) AI policy learn+save, (c) history insert, (d) active
// delete — (c)+(d) atomic when the store supports it, best-effort two-step
// otherwise. Anonymous players (empty UserID) skip both (a) and (b): no ELO
// change and no policy update (spec §9 Open Question).
func (e *Engine) terminalPipeline(ctx context.Context, logger runtime.Logger, m *match.Match, reason string) (*match.HistoricalMatch, error) {
	logger = e.logger(logger)
	m.Reason = reason

	playerWon := m.Winner == match.RolePlayer
	playerSlot := m.PlayerSlotFor(match.RolePlayer)

	var eloFrom, eloTo int
	if playerSlot != nil && playerSlot.UserID != "" && e.Users != nil {
		if profile, err := e.Users.GetProfile(ctx, playerSlot.UserID); err == nil {
			eloFrom = profile.ELO
		}
		delta := worldgen.EloDeltaOnLoss()
		if playerWon {
			delta = worldgen.EloDeltaOnWin()
		}
		newELO, err := e.Users.UpdateELO(ctx, playerSlot.UserID, delta)
		if err != nil {
			elog.Error(ctx, logger, "terminal pipeline: ELO update failed", err)
		} else {
			eloTo = newELO
		}
	}

	if e.Policies != nil && playerSlot != nil && playerSlot.UserID != "" {
		aiUserID := playerSlot.UserID
		policy, version, err := ai.LoadEffectivePolicy(ctx, e.Policies, aiUserID)
		if err != nil {
			elog.Error(ctx, logger, "terminal pipeline: policy load failed", err)
		} else {
			ai.Learn(policy, m, !playerWon)
			if _, err := ai.SavePolicy(ctx, e.Policies, aiUserID, policy, version); err != nil {
				elog.Error(ctx, logger, "terminal pipeline: policy save failed", err)
			}
		}
	}

	hist := buildHistoricalMatch(m, eloFrom, eloTo)

	if archiver, ok := e.Matches.(match.TransactionalArchiver); ok {
		err := e.retryArchival(func() error { return archiver.ArchiveAndDelete(ctx, hist, m.ID) })
		if err != nil {
			elog.Error(ctx, logger, "terminal pipeline: atomic archive failed", err)
			return nil, err
		}
		return hist, nil
	}

	if err := e.retryArchival(func() error { return e.History.Append(ctx, hist) }); err != nil {
		elog.Error(ctx, logger, "terminal pipeline: history insert failed", err)
		return nil, err
	}
	if err := e.Matches.Delete(ctx, m.ID); err != nil {
		elog.Error(ctx, logger, "terminal pipeline: active delete failed after history insert", err)
	}
	return hist, nil
}

// retryArchival makes up to MaxCASRetries attempts (at least one) while the
// failure is a transient StorageError (spec §7: "the orchestrator MAY retry
// once for terminal-pipeline archival"). Any other error kind returns
// immediately.
func (e *Engine) retryArchival(op func() error) error {
	attempts := e.MaxCASRetries
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if !errors.Is(err, matcherr.ErrStorageWrite) && !errors.Is(err, matcherr.ErrStorageRead) && !errors.Is(err, matcherr.ErrTransactionFailed) {
			return err
		}
	}
	return err
}

// actionsHistogramByActor counts m.ActionHistory per actor, keyed by action
// type (spec §3 "HistoricalMatch.actionsHistogram is a count map keyed by
// action type", §8 round-trip property: totals equal the number of logged
// player and AI actions).
func actionsHistogramByActor(m *match.Match) map[string]map[string]int {
	out := map[string]map[string]int{
		match.RolePlayer: {},
		match.RoleAI:     {},
	}
	for _, e := range m.ActionHistory {
		actor := out[e.Actor]
		if actor == nil {
			actor = map[string]int{}
			out[e.Actor] = actor
		}
		actor[e.Action]++
	}
	return out
}

func buildHistoricalMatch(m *match.Match, playerEloFrom, playerEloTo int) *match.HistoricalMatch {
	now := time.Now().UnixMilli()
	histograms := actionsHistogramByActor(m)
	players := make([]match.HistoricalPlayer, 0, len(m.Players))
	for _, slot := range m.Players {
		hp := match.HistoricalPlayer{
			Role:             slot.Role,
			UserID:           slot.UserID,
			Handle:           slot.Handle,
			Won:              slot.Role == m.Winner,
			ActionsHistogram: histograms[slot.Role],
		}
		if slot.Role == match.RolePlayer {
			hp.ELOFrom = playerEloFrom
			hp.ELOTo = playerEloTo
		}
		players = append(players, hp)
	}

	return &match.HistoricalMatch{
		MatchID:   m.ID,
		Seed:      m.Seed,
		GridSize:  m.GridSize,
		Winner:    m.Winner,
		Reason:    m.Reason,
		TurnCount: m.TurnIndex,
		Players:   players,
		CreatedAt: m.CreatedAt,
		EndedAt:   now,
	}
}
