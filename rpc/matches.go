package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/matcherr"
)

const defaultListLimit = 20

type listMatchesRequest struct {
	callerAuth
	Limit int `json:"limit,omitempty"`
}

// RpcActiveMatches implements GET /profile/active_matches (spec §6).
func (d *Deps) RpcActiveMatches(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req listMatchesRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", matcherr.ErrUnmarshal
		}
	}

	userID, _, err := d.resolveCaller(ctx, req.Authorization)
	if err != nil {
		return "", err
	}
	ctx = withOwner(ctx, userID)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	matches, err := d.Engine.Matches.ListActiveByPlayer(ctx, userID, limit)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(matches)
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}

// RpcHistoricMatches implements GET /profile/historic_matches (spec §6).
func (d *Deps) RpcHistoricMatches(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req listMatchesRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", matcherr.ErrUnmarshal
		}
	}

	userID, _, err := d.resolveCaller(ctx, req.Authorization)
	if err != nil {
		return "", err
	}
	ctx = withOwner(ctx, userID)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := d.Engine.History.ListForUser(ctx, userID, limit)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(records)
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}
