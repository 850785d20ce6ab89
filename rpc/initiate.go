package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/matcherr"
)

type initiateGameRequest struct {
	callerAuth
	Seed       string `json:"seed,omitempty"`
	ELO        int    `json:"elo,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	FirstActor string `json:"firstActor,omitempty"`
}

// RpcInitiateGame implements POST /initiate_game (spec §6).
func (d *Deps) RpcInitiateGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req initiateGameRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", matcherr.ErrUnmarshal
	}

	userID, handle, err := d.resolveCaller(ctx, req.Authorization)
	if err != nil {
		return "", err
	}
	ctx = withOwner(ctx, userID)

	m, err := d.Engine.Initiate(ctx, logger, engine.InitiateInput{
		UserID:     userID,
		Handle:     handle,
		Seed:       req.Seed,
		ELO:        req.ELO,
		Width:      req.Width,
		Height:     req.Height,
		FirstActor: req.FirstActor,
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
