package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// PolicyStore implements match.PolicyStore, CAS enforced the same way
// MatchStore enforces it.
type PolicyStore struct {
	db *sql.DB
}

func (s *PolicyStore) Load(ctx context.Context, userID string) (*match.AIPolicy, int, error) {
	var body string
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT body, version FROM ai_policies WHERE user_id = ?`, userID).Scan(&body, &version)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	var p match.AIPolicy
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
	}
	return &p, version, nil
}

func (s *PolicyStore) Save(ctx context.Context, userID string, p *match.AIPolicy, expectedVersion int) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	newVersion := expectedVersion + 1

	if expectedVersion == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO ai_policies (user_id, version, body) VALUES (?, ?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET body = excluded.body, version = excluded.version
			 WHERE ai_policies.version = 0`,
			userID, newVersion, string(body),
		)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
		}
		if n == 0 {
			return 0, matcherr.ErrVersionMismatch
		}
		return newVersion, nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE ai_policies SET body = ?, version = ? WHERE user_id = ? AND version = ?`,
		string(body), newVersion, userID, expectedVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	if n == 0 {
		return 0, matcherr.ErrVersionMismatch
	}
	return newVersion, nil
}
