package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

type resignRequest struct {
	callerAuth
	MatchID string `json:"matchId"`
}

// endGameSummary is the `{historicalId, summary}` shape spec §6 documents
// for both /end_game and the resign endpoint. There is one historical
// record per match, so its matchId doubles as the historical record's id.
type endGameSummary struct {
	HistoricalID string                `json:"historicalId"`
	Summary      *match.HistoricalMatch `json:"summary"`
}

// RpcResign implements the resign endpoint (spec §4.7, §6).
func (d *Deps) RpcResign(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req resignRequest
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

	hist, err := d.Engine.Resign(ctx, logger, req.MatchID, match.RolePlayer)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(endGameSummary{HistoricalID: hist.MatchID, Summary: hist})
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}
