// Package nkstore backs match.Store, match.HistoryStore, match.PolicyStore,
// and match.UserStore with Nakama's runtime storage engine, grounded on the
// teacher's items/storage_operations.go (read/list shape) and
// items/match_result.go (per-user collection, active-match lifecycle) and
// items/pending_writes.go (MultiUpdate-based atomic commit).
//
// Nakama storage objects are always scoped to a UserID. match.Store's
// Read/Write/Delete only carry a matchID, so the owning player's ID travels
// on the context the same way elog tags the acting user — WithOwner sets
// it, the same shape as elog.WithUser.
package nkstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

const (
	collectionMatches  = "matches"
	collectionHistory  = "match_history"
	collectionPolicies = "ai_policies"
	collectionProfiles = "profiles"

	keyElo = "elo"
)

type ctxKey string

const ctxKeyOwner ctxKey = "nkstore_owner"

// WithOwner attaches the human player's user ID to ctx so MatchStore's
// Read/Write/Delete (which only carry a matchID, per match.Store's
// signature) know which Nakama storage partition to address.
func WithOwner(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyOwner, userID)
}

func ownerFromCtx(ctx context.Context) (string, error) {
	uid, _ := ctx.Value(ctxKeyOwner).(string)
	if uid == "" {
		return "", fmt.Errorf("nkstore: no owner on context; call nkstore.WithOwner first")
	}
	return uid, nil
}

// MatchStore implements match.Store against Nakama storage.
type MatchStore struct {
	NK runtime.NakamaModule
}

func (s *MatchStore) readRaw(ctx context.Context, owner, matchID string) (*match.Match, string, error) {
	objs, err := s.NK.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: collectionMatches, Key: matchID, UserID: owner},
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	if len(objs) == 0 {
		return nil, "", matcherr.ErrMatchNotFound
	}
	var m match.Match
	if err := json.Unmarshal([]byte(objs[0].Value), &m); err != nil {
		return nil, "", fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
	}
	return &m, objs[0].Version, nil
}

func (s *MatchStore) Create(ctx context.Context, m *match.Match) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	_, err = s.NK.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collectionMatches,
		Key:             m.ID,
		UserID:          ownerOf(m),
		Value:           string(body),
		Version:         "*", // must not already exist
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *MatchStore) Read(ctx context.Context, matchID string) (*match.Match, int, error) {
	owner, err := ownerFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	m, _, err := s.readRaw(ctx, owner, matchID)
	if err != nil {
		return nil, 0, err
	}
	return m, m.Version, nil
}

func (s *MatchStore) Write(ctx context.Context, matchID string, m *match.Match, expectedVersion int) (int, error) {
	owner := ownerOf(m)
	current, nakamaVersion, err := s.readRaw(ctx, owner, matchID)
	if err != nil {
		return 0, err
	}
	if current.Version != expectedVersion {
		return 0, matcherr.ErrVersionMismatch
	}

	newVersion := expectedVersion + 1
	m.Version = newVersion
	body, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}

	_, err = s.NK.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collectionMatches,
		Key:             matchID,
		UserID:          owner,
		Value:           string(body),
		Version:         nakamaVersion, // Nakama rejects the write if this no longer matches storage
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return 0, matcherr.ErrVersionMismatch
	}
	return newVersion, nil
}

func (s *MatchStore) Delete(ctx context.Context, matchID string) error {
	owner, err := ownerFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.NK.StorageDelete(ctx, []*runtime.StorageDelete{
		{Collection: collectionMatches, Key: matchID, UserID: owner},
	}); err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *MatchStore) ListActiveByPlayer(ctx context.Context, userID string, limit int) ([]*match.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	objs, _, err := s.NK.StorageList(ctx, "", userID, collectionMatches, limit, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	var out []*match.Match
	for _, obj := range objs {
		var m match.Match
		if err := json.Unmarshal([]byte(obj.Value), &m); err != nil {
			continue
		}
		if m.Status == match.StatusActive {
			out = append(out, &m)
		}
	}
	return out, nil
}

// ArchiveAndDelete implements match.TransactionalArchiver via a single
// MultiUpdate call: the history insert and the active-match delete commit
// atomically, grounded on the teacher's CommitPendingWrites/MultiUpdate
// pattern (items/pending_writes.go).
func (s *MatchStore) ArchiveAndDelete(ctx context.Context, hist *match.HistoricalMatch, matchID string) error {
	body, err := json.Marshal(hist)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	var owner string
	for _, p := range hist.Players {
		if p.Role == match.RolePlayer {
			owner = p.UserID
		}
	}

	writes := []*runtime.StorageWrite{{
		Collection:      collectionHistory,
		Key:             hist.MatchID,
		UserID:          owner,
		Value:           string(body),
		PermissionRead:  1,
		PermissionWrite: 0,
	}}
	deletes := []*runtime.StorageDelete{{
		Collection: collectionMatches,
		Key:        matchID,
		UserID:     owner,
	}}

	_, _, err = s.NK.MultiUpdate(ctx, nil, writes, deletes, nil, true)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrTransactionFailed, err)
	}
	return nil
}

func ownerOf(m *match.Match) string {
	if slot := m.PlayerSlotFor(match.RolePlayer); slot != nil {
		return slot.UserID
	}
	return ""
}
