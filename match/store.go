package match

import (
	"context"

	"crab.casa/tactics-engine/grid"
)

// Store is the optimistic-concurrency match document store the orchestrator
// depends on (spec §5, §8). Read returns the current Version alongside the
// decoded Match; Write must fail with matcherr.ErrVersionMismatch (wrapped,
// so callers can errors.Is) if expectedVersion no longer matches.
type Store interface {
	Read(ctx context.Context, matchID string) (*Match, int, error)
	Write(ctx context.Context, matchID string, m *Match, expectedVersion int) (int, error)
	Create(ctx context.Context, m *Match) error
	Delete(ctx context.Context, matchID string) error
	ListActiveByPlayer(ctx context.Context, userID string, limit int) ([]*Match, error)
}

// TransactionalArchiver is implemented by stores that can commit the
// terminal pipeline's history-insert and active-delete in a single atomic
// operation (spec §4.6 "SHOULD be atomic when the store supports
// transactions"). A store that doesn't implement this falls back to the
// orchestrator's best-effort two-step insert-then-delete.
type TransactionalArchiver interface {
	ArchiveAndDelete(ctx context.Context, hist *HistoricalMatch, matchID string) error
}

// HistoricalPlayer is one side of a finished match, as archived by the
// terminal pipeline after a victory, a resign, or EndGame (spec §3
// "history record").
type HistoricalPlayer struct {
	Role             string         `json:"role"`
	UserID           string         `json:"userId,omitempty"`
	Handle           string         `json:"handle,omitempty"`
	Won              bool           `json:"won"`
	ELOFrom          int            `json:"eloFrom,omitempty"`
	ELOTo            int            `json:"eloTo,omitempty"`
	ActionsHistogram map[string]int `json:"actionsHistogram"`
}

// HistoricalMatch is the immutable record written once a match ends.
type HistoricalMatch struct {
	MatchID   string             `json:"matchId"`
	Seed      string             `json:"seed"`
	GridSize  grid.Size          `json:"gridSize"`
	Winner    string             `json:"winner"`
	Reason    string             `json:"reason"`
	TurnCount int                `json:"turnCount"`
	Players   []HistoricalPlayer `json:"players"`
	CreatedAt int64              `json:"createdAt"`
	EndedAt   int64              `json:"endedAt"`
}

// HistoryStore appends and lists historical match records (spec §6
// GET /matches/historic).
type HistoryStore interface {
	Append(ctx context.Context, rec *HistoricalMatch) error
	ListForUser(ctx context.Context, userID string, limit int) ([]HistoricalMatch, error)
}

// ActionWeights is one action kind's learned feature-weight vector (spec
// §4.5 adaptive AI).
type ActionWeights struct {
	Weights []float64 `json:"weights"`
}

// AIPolicy is one user's per-action-kind learned weights, keyed by action
// name ("MOVE", "SHOOT", ...). Policies are per opponent-user, not global,
// so a player's AI opponent adapts to them specifically (spec §3 AIPolicy,
// §4.5 "prefer the player-scoped policy, else fall back to a global default").
type AIPolicy struct {
	Scope       string                   `json:"scope"` // "player" | "global"
	UserID      string                   `json:"userId,omitempty"`
	Version     int                      `json:"version"`
	Epsilon     float64                  `json:"epsilon"`
	Actions     map[string]ActionWeights `json:"actions"`
	GamesPlayed int                      `json:"gamesPlayed"`
	Wins        int                      `json:"wins"`
}

// PolicyStore persists learned AI weights across matches (spec §4.5).
type PolicyStore interface {
	Load(ctx context.Context, userID string) (*AIPolicy, int, error)
	Save(ctx context.Context, userID string, p *AIPolicy, expectedVersion int) (int, error)
}

// UserProfile is the subset of account data the terminal pipeline reads to
// learn a player's ELO before adjusting it.
type UserProfile struct {
	UserID string
	Handle string
	ELO    int
}

// UserStore reads and adjusts a player's ELO for the terminal pipeline.
type UserStore interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpdateELO(ctx context.Context, userID string, delta int) (int, error)
}
