package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/redis/go-redis/v9"

	"crab.casa/tactics-engine/auth"
	"crab.casa/tactics-engine/engine"
	"crab.casa/tactics-engine/recipes"
	"crab.casa/tactics-engine/rpc"
	"crab.casa/tactics-engine/store/lock"
	"crab.casa/tactics-engine/store/nkstore"
)

// InitModule is Nakama's plugin entrypoint: load the recipe catalog, wire
// the Nakama-backed stores into an Engine, and register every RPC (spec §6).
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	initStart := time.Now()

	if err := recipes.Load(); err != nil {
		logger.Error("failed to load recipe catalog: %v", err)
		return err
	}

	matches := &nkstore.MatchStore{NK: nk}
	history := &nkstore.HistoryStore{NK: nk}
	policies := &nkstore.PolicyStore{NK: nk}
	users := &nkstore.UserStore{NK: nk}

	e := engine.New(matches, history, policies, users)
	if locker := newLocker(logger); locker != nil {
		e.Lock = locker
	}

	deps := &rpc.Deps{
		Engine: e,
		Auth:   auth.NewVerifier(jwtSecret()),
	}

	registrations := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		"initiate_game":             deps.RpcInitiateGame,
		"update":                    deps.RpcUpdate,
		"end_game":                  deps.RpcEndGame,
		"matches_id_resign":         deps.RpcResign,
		"recipes":                   deps.RpcListRecipes,
		"recipes_get":               deps.RpcGetRecipe,
		"profile_active_matches":    deps.RpcActiveMatches,
		"profile_historic_matches":  deps.RpcHistoricMatches,
	}
	for id, fn := range registrations {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			logger.Error("unable to register rpc %q: %v", id, err)
			return err
		}
	}

	logger.Info("tactics engine plugin loaded in %d msec", time.Since(initStart).Milliseconds())
	return nil
}

// newLocker builds the optional Redis advisory lock (spec §2.12) when
// REDIS_ADDR is configured; deployments without it fall back to the
// engine's default NoopLocker, relying solely on storage-layer CAS.
func newLocker(logger runtime.Logger) lock.Locker {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	logger.Info("using redis advisory lock at %s", addr)
	return lock.NewRedisLocker(client, "tactics-engine:lock:", 5*time.Second)
}

func jwtSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "dev-insecure-secret"
}
