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

// MatchStore implements match.Store with optimistic concurrency enforced by
// `UPDATE ... WHERE version = ?` + a RowsAffected check, the sqlite-native
// equivalent of Nakama storage's Version-mismatch rejection (spec §5, §8).
type MatchStore struct {
	db *sql.DB
}

func ownerOf(m *match.Match) string {
	if slot := m.PlayerSlotFor(match.RolePlayer); slot != nil {
		return slot.UserID
	}
	return ""
}

func (s *MatchStore) Create(ctx context.Context, m *match.Match) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO matches (id, version, owner_id, body, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Version, ownerOf(m), string(body), m.Status, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *MatchStore) Read(ctx context.Context, matchID string) (*match.Match, int, error) {
	var body string
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT body, version FROM matches WHERE id = ?`, matchID).Scan(&body, &version)
	if err == sql.ErrNoRows {
		return nil, 0, matcherr.ErrMatchNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	var m match.Match
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
	}
	return &m, version, nil
}

func (s *MatchStore) Write(ctx context.Context, matchID string, m *match.Match, expectedVersion int) (int, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}
	newVersion := expectedVersion + 1
	res, err := s.db.ExecContext(ctx,
		`UPDATE matches SET body = ?, version = ?, owner_id = ?, status = ? WHERE id = ? AND version = ?`,
		string(body), newVersion, ownerOf(m), m.Status, matchID, expectedVersion,
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

func (s *MatchStore) Delete(ctx context.Context, matchID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrStorageWrite, err)
	}
	return nil
}

func (s *MatchStore) ListActiveByPlayer(ctx context.Context, userID string, limit int) ([]*match.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM matches WHERE owner_id = ? AND status = ? ORDER BY created_at DESC LIMIT ?`,
		userID, match.StatusActive, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
	}
	defer rows.Close()

	var out []*match.Match
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", matcherr.ErrStorageRead, err)
		}
		var m match.Match
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			return nil, fmt.Errorf("%w: %v", matcherr.ErrUnmarshal, err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ArchiveAndDelete implements match.TransactionalArchiver using a real
// sqlite transaction, so enginectl and tests exercise the same atomic
// terminal-pipeline path store/nkstore takes via Nakama's MultiUpdate.
func (s *MatchStore) ArchiveAndDelete(ctx context.Context, hist *match.HistoricalMatch, matchID string) error {
	body, err := json.Marshal(hist)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrMarshal, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	var owner string
	for _, p := range hist.Players {
		if p.Role == match.RolePlayer {
			owner = p.UserID
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO match_history (id, match_id, owner_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), hist.MatchID, owner, string(body), hist.EndedAt,
	); err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrTransactionFailed, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, matchID); err != nil {
		return fmt.Errorf("%w: %v", matcherr.ErrTransactionFailed, err)
	}
	return tx.Commit()
}
