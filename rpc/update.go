package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/resolve"
)

type updateRequest struct {
	callerAuth
	MatchID         string         `json:"matchId"`
	ActionType      string         `json:"type"`
	Params          resolve.Params `json:"params"`
	SnapshotVersion *int           `json:"snapshotVersion,omitempty"`
}

// RpcUpdate implements POST /update (spec §6, §4.6): dispatches one player
// action and returns the match snapshot after the AI's reply, if any.
func (d *Deps) RpcUpdate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req updateRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", matcherr.ErrUnmarshal
	}
	if req.MatchID == "" || req.ActionType == "" {
		return "", matcherr.ErrInvalidInput
	}

	userID, _, err := d.resolveCaller(ctx, req.Authorization)
	if err != nil {
		return "", err
	}
	ctx = withOwner(ctx, userID)

	m, err := d.Engine.Update(ctx, logger, engine.UpdateInput{
		MatchID:         req.MatchID,
		Actor:           match.RolePlayer,
		ActionType:      req.ActionType,
		Params:          req.Params,
		SnapshotVersion: req.SnapshotVersion,
	})
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(m)
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}
