package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/matcherr"
)

type endGameRequest struct {
	callerAuth
	MatchID string `json:"matchId"`
	Reason  string `json:"reason,omitempty"`
	Winner  string `json:"winner,omitempty"`
}

// RpcEndGame implements POST /end_game (spec §6): an administrative close,
// distinct from a resolver-driven victory or a player Resign call.
func (d *Deps) RpcEndGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req endGameRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", matcherr.ErrUnmarshal
	}
	if req.MatchID == "" {
		return "", matcherr.ErrInvalidInput
	}

	userID, _, err := d.resolveCaller(ctx, req.Authorization)
	if err != nil {
		return "", err
	}
	ctx = withOwner(ctx, userID)

	hist, err := d.Engine.EndGame(ctx, logger, engine.EndGameInput{
		MatchID: req.MatchID,
		Reason:  req.Reason,
		Winner:  req.Winner,
	})
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(endGameSummary{HistoricalID: hist.MatchID, Summary: hist})
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}
