package rpc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/matcherr"
	"crab.casa/tactics-engine/recipes"
)

type listRecipesRequest struct {
	Kind        string `json:"kind,omitempty"`
	WeaponClass string `json:"weaponClass,omitempty"`
	MinGrade    int    `json:"minGrade,omitempty"`
	MaxGrade    int    `json:"maxGrade,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// RpcListRecipes implements GET /recipes (spec §6) — a public path, no
// caller identity required.
func (d *Deps) RpcListRecipes(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req listRecipesRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", matcherr.ErrUnmarshal
		}
	}

	filter := recipes.Filter{
		Kind:        req.Kind,
		WeaponClass: req.WeaponClass,
		MinGrade:    req.MinGrade,
		MaxGrade:    req.MaxGrade,
	}
	if req.Enabled != nil {
		filter.EnabledSet = true
		filter.Enabled = *req.Enabled
	}

	body, err := json.Marshal(recipes.List(filter))
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}

type getRecipeRequest struct {
	Key string `json:"key"`
}

// RpcGetRecipe implements GET /recipes/{key} (spec §6) — also public.
func (d *Deps) RpcGetRecipe(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req getRecipeRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", matcherr.ErrUnmarshal
	}
	if req.Key == "" {
		return "", matcherr.ErrInvalidInput
	}

	recipe, ok := recipes.Get(req.Key)
	if !ok {
		return "", matcherr.ErrRecipeNotFound
	}

	body, err := json.Marshal(recipe)
	if err != nil {
		return "", matcherr.ErrMarshal
	}
	return string(body), nil
}
