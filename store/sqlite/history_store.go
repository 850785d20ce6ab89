package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// HistoryStore implements match.HistoryStore.
type HistoryStore struct {
	db *sql.DB
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
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO match_history (id, match_id, owner_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.MatchID, owner, string(body), rec.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *HistoryStore) ListForUser(ctx context.Context, userID string, limit int) ([]match.HistoricalMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM match_history WHERE owner_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	defer rows.Close()

	var out []match.HistoricalMatch
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
		}
		var h match.HistoricalMatch
		if err := json.Unmarshal([]byte(body), &h); err != nil {
			return nil, fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
