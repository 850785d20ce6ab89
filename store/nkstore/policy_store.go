package nkstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// PolicyStore implements match.PolicyStore. The global fallback policy is
// stored with an empty UserID (system-owned, as the teacher's daily rate
// counters do for server-only state); player-scoped policies use the
// player's own UserID.
type PolicyStore struct {
	NK runtime.NakamaModule
}

func ownerForPolicyKey(key string) string {
	if key == "global" {
		return ""
	}
	return key
}

func (s *PolicyStore) Load(ctx context.Context, userID string) (*match.AIPolicy, int, error) {
	objs, err := s.NK.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: collectionPolicies, Key: userID, UserID: ownerForPolicyKey(userID)},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	if len(objs) == 0 {
		return nil, 0, nil
	}
	var p match.AIPolicy
	if err := json.Unmarshal([]byte(objs[0].Value), &p); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
	}
	return &p, p.Version, nil
}

func (s *PolicyStore) Save(ctx context.Context, userID string, p *match.AIPolicy, expectedVersion int) (int, error) {
	owner := ownerForPolicyKey(userID)

	current, _, err := s.Load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if current != nil && current.Version != expectedVersion {
		return 0, matcherr.ErrVersionMismatch
	}

	newVersion := expectedVersion + 1
	p.Version = newVersion
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}

	version := "*"
	if current != nil {
		objs, err := s.NK.StorageRead(ctx, []*runtime.StorageRead{
			{Collection: collectionPolicies, Key: userID, UserID: owner},
		})
		if err == nil && len(objs) > 0 {
			version = objs[0].Version
		}
	}

	_, err = s.NK.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collectionPolicies,
		Key:             userID,
		UserID:          owner,
		Value:           string(body),
		Version:         version,
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return 0, matcherr.ErrVersionMismatch
	}
	return newVersion, nil
}
