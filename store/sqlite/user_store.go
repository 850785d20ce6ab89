package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/matcherr"
)

// UserStore implements match.UserStore against the local users table; a
// production deployment's real user table lives in Nakama, not here (see
// store/nkstore).
type UserStore struct {
	db *sql.DB
}

func (s *UserStore) GetProfile(ctx context.Context, userID string) (*match.UserProfile, error) {
	var handle string
	var elo int
	err := s.db.QueryRowContext(ctx, `SELECT handle, elo FROM users WHERE user_id = ?`, userID).Scan(&handle, &elo)
	if err == sql.ErrNoRows {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO users (user_id, handle, elo) VALUES (?, ?, 1200)`, userID, userID); err != nil {
			return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
		}
		return &match.UserProfile{UserID: userID, Handle: userID, ELO: 1200}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	return &match.UserProfile{UserID: userID, Handle: handle, ELO: elo}, nil
}

func (s *UserStore) UpdateELO(ctx context.Context, userID string, delta int) (int, error) {
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET elo = elo + ? WHERE user_id = ?`, delta, userID); err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	var elo int
	if err := s.db.QueryRowContext(ctx, `SELECT elo FROM users WHERE user_id = ?`, userID).Scan(&elo); err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	return elo, nil
}
