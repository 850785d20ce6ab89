package nkstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// UserStore implements match.UserStore. ELO rides in a small per-user
// "profiles" storage object rather than the account wallet, since it isn't
// a spendable currency — the wallet is reserved for real economy values the
// way the teacher's daily_drops.go uses it.
type UserStore struct {
	NK runtime.NakamaModule
}

type eloDoc struct {
	ELO int `json:"elo"`
}

func (s *UserStore) GetProfile(ctx context.Context, userID string) (*match.UserProfile, error) {
	account, err := s.NK.AccountGetId(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	handle := account.User.Username

	objs, err := s.NK.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: collectionProfiles, Key: keyElo, UserID: userID},
	})
	elo := 1200
	if err == nil && len(objs) > 0 {
		var doc eloDoc
		if json.Unmarshal([]byte(objs[0].Value), &doc) == nil {
			elo = doc.ELO
		}
	}

	return &match.UserProfile{UserID: userID, Handle: handle, ELO: elo}, nil
}

func (s *UserStore) UpdateELO(ctx context.Context, userID string, delta int) (int, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	newELO := profile.ELO + delta
	body, err := json.Marshal(eloDoc{ELO: newELO})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	_, err = s.NK.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collectionProfiles,
		Key:             keyElo,
		UserID:          userID,
		Value:           string(body),
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return newELO, nil
}
