package engine

import (
	"context"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/elog"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// EndGameInput mirrors POST /end_game's body (spec §6): an administrative
// end, distinct from a resolver-driven victory or a Resign call — e.g. a
// draw, a timeout, or an operator-forced close.
type EndGameInput struct {
	MatchID string
	Reason  string // defaults to "admin_end"
	Winner  string // "player", "ai", or "" for a draw
}

// EndGame closes a still-active match outside the normal action-resolution
// path and runs the same terminal pipeline a resolver-driven victory would
// (spec §4.6 terminal pipeline, §6 /end_game).
func (e *Engine) EndGame(ctx context.Context, logger runtime.Logger, in EndGameInput) (*match.HistoricalMatch, error) {
	logger = e.logger(logger)

	loaded, version, err := e.Matches.Read(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if loaded.Status != match.StatusActive {
		return nil, matcherr.ErrMatchEnded
	}

	reason := in.Reason
	if reason == "" {
		reason = "admin_end"
	}

	working := match.Clone(loaded)
	working.Status = match.StatusEnded
	working.Winner = in.Winner
	working.UpdatedAt = time.Now().UnixMilli()

	newVersion, err := e.Matches.Write(ctx, in.MatchID, working, version)
	if err != nil {
		return nil, err
	}
	working.Version = newVersion

	hist, err := e.terminalPipeline(ctx, logger, working, reason)
	if err != nil {
		return nil, err
	}
	elog.Success(ctx, logger, "end_game")
	return hist, nil
}
