package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/matcherr"
)

func TestRpcListRecipesReturnsCatalog(t *testing.T) {
	d := &Deps{}
	out, err := d.RpcListRecipes(context.Background(), nil, nil, nil, "")
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	var recipes []map[string]any
	if err := json.Unmarshal([]byte(out), &recipes); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(recipes) == 0 {
		t.Fatal("expected a non-empty recipe catalog")
	}
}

func TestRpcGetRecipeRejectsUnknownKey(t *testing.T) {
	d := &Deps{}
	payload, _ := json.Marshal(getRecipeRequest{Key: "does.not.exist"})
	_, err := d.RpcGetRecipe(context.Background(), nil, nil, nil, string(payload))
	if err != matcherr.ErrRecipeNotFound {
		t.Fatalf("expected recipe-not-found, got %v", err)
	}
}

func TestResolveCallerPrefersSessionUserID(t *testing.T) {
	d := &Deps{}
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "u1")
	userID, _, err := d.resolveCaller(ctx, "")
	if err != nil {
		t.Fatalf("resolveCaller: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected the session's userID, got %q", userID)
	}
}

func TestResolveCallerRejectsAnonymousWithNoToken(t *testing.T) {
	d := &Deps{}
	_, _, err := d.resolveCaller(context.Background(), "")
	if err != matcherr.ErrInvalidToken {
		t.Fatalf("expected invalid-token, got %v", err)
	}
}
