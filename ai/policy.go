package ai

import (
	"context"

	"crab.casa/tactics-engine/match"
)

// LoadEffectivePolicy resolves the policy an AI turn should use: the
// player-scoped policy if one has been saved, else a stored global
// default, else the code-embedded DefaultPolicy (spec §4.5 "prefer the
// player-scoped policy, else fall back to a global default embedded in
// code"). Anonymous players (empty userID) always use the global/default
// path (spec §9 Open Question).
func LoadEffectivePolicy(ctx context.Context, store match.PolicyStore, userID string) (*match.AIPolicy, int, error) {
	if userID != "" {
		p, version, err := store.Load(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		if p != nil && len(p.Actions) > 0 {
			return p, version, nil
		}
	}

	p, version, err := store.Load(ctx, globalPolicyKey)
	if err != nil {
		return nil, 0, err
	}
	if p != nil && len(p.Actions) > 0 {
		return p, version, nil
	}

	return DefaultPolicy(), 0, nil
}

// SavePolicy persists the policy that a terminal pipeline just updated via
// Learn, keyed the same way LoadEffectivePolicy resolved it. The engine's
// terminal pipeline does not call this at all for anonymous players (spec
// §9 Open Question: "skip policy update ... for anonymous players"); the
// empty-userID fallback here exists only so this function is safe to call
// defensively from other callers (e.g. enginectl).
func SavePolicy(ctx context.Context, store match.PolicyStore, userID string, p *match.AIPolicy, expectedVersion int) (int, error) {
	key := userID
	if key == "" {
		key = globalPolicyKey
		p.Scope = "global"
	} else {
		p.Scope = "player"
		p.UserID = userID
	}
	return store.Save(ctx, key, p, expectedVersion)
}
