package nkstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// HistoryStore implements match.HistoryStore. MatchStore.ArchiveAndDelete
// writes the history record itself and does not call Append; Append is the
// standalone insert the engine's two-step fallback uses when the match store
// cannot archive atomically.
type HistoryStore struct {
	NK runtime.NakamaModule
}

func (s *HistoryStore) Append(ctx context.Context, rec *match.HistoricalMatch) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	var owner string
	for _, p := range rec.Players {
		if p.Role == match.RolePlayer {
			owner = p.UserID
		}
	}
	_, err = s.NK.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      collectionHistory,
		Key:             rec.MatchID,
		UserID:          owner,
		Value:           string(body),
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *HistoryStore) ListForUser(ctx context.Context, userID string, limit int) ([]match.HistoricalMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	objs, _, err := s.NK.StorageList(ctx, "", userID, collectionHistory, limit, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	out := make([]match.HistoricalMatch, 0, len(objs))
	for _, obj := range objs {
		var h match.HistoricalMatch
		if err := json.Unmarshal([]byte(obj.Value), &h); err != nil {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}
