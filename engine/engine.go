// Package engine orchestrates a match's lifecycle — initiation, per-turn
// updates, resignation, and the terminal pipeline — the way the teacher's
// items RPC handlers orchestrate storage reads, resolver calls, and
// MultiUpdate commits behind a single entrypoint.
package engine

import (
	"github.com/heroiclabs/nakama-common/runtime"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/store/lock"
)

// Engine wires the storage and policy dependencies the orchestrator needs.
// Nil fields are valid where noted: Lock may be nil (no advisory locking),
// Users may be nil only for deployments with no ELO system wired up.
type Engine struct {
	Matches  match.Store
	History  match.HistoryStore
	Policies match.PolicyStore
	Users    match.UserStore
	Lock     lock.Locker

	MaxCASRetries int
}

// New builds an Engine with sane defaults (a no-op advisory lock, and 3
// attempts for terminal-pipeline archival; Update itself never retries CAS).
func New(matches match.Store, history match.HistoryStore, policies match.PolicyStore, users match.UserStore) *Engine {
	return &Engine{
		Matches:       matches,
		History:       history,
		Policies:      policies,
		Users:         users,
		Lock:          lock.NoopLocker{},
		MaxCASRetries: 3,
	}
}

func (e *Engine) logger(l runtime.Logger) runtime.Logger {
	if l != nil {
		return l
	}
	return runtime.Logger(noopLogger{})
}

// noopLogger satisfies runtime.Logger for callers (tests, enginectl) that
// don't have a live Nakama logger to pass.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})               {}
func (noopLogger) Info(string, ...interface{})                {}
func (noopLogger) Warn(string, ...interface{})                {}
func (noopLogger) Error(string, ...interface{})               {}
func (noopLogger) WithField(string, interface{}) runtime.Logger { return noopLogger{} }
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger { return noopLogger{} }
func (noopLogger) Fields() map[string]interface{}              { return nil }
