package engine

import (
	"context"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/elog"
	"crab.casa/tactics-engine/match"
)

// Resign ends a match in the resigning side's favor for the opponent (spec
// §4.7): winner is set to the opposite role, reason="resign", and the same
// terminal pipeline runs as a normal victory. Resigning a match that is
// still present in active storage but already marked ended — the orphan
// left behind by a terminal pipeline that inserted history but couldn't
// delete the active record (spec §7 "the active record is an orphan that
// subsequent operations will recognize as ended") — is a no-op that
// rebuilds and returns the same summary rather than erroring (spec §4.7
// "200-level no-op returning the existing summary"). Once the active
// record is actually gone, a repeat call surfaces ErrMatchNotFound instead.
func (e *Engine) Resign(ctx context.Context, logger runtime.Logger, matchID, role string) (*match.HistoricalMatch, error) {
	logger = e.logger(logger)

	loaded, version, err := e.Matches.Read(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if loaded.Status != match.StatusActive {
		elog.Info(ctx, logger, "resign: match already ended, returning existing summary")
		return buildHistoricalMatch(loaded, 0, 0), nil
	}

	working := match.Clone(loaded)
	working.Status = match.StatusEnded
	working.Winner = match.Opposite(role)
	working.UpdatedAt = time.Now().UnixMilli()

	newVersion, err := e.Matches.Write(ctx, matchID, working, version)
	if err != nil {
		return nil, err
	}
	working.Version = newVersion

	hist, err := e.terminalPipeline(ctx, logger, working, "resign")
	if err != nil {
		return nil, err
	}
	elog.Success(ctx, logger, "resign")
	return hist, nil
}
