// Package lock provides an optional per-match advisory lock the engine can
// take around its load -> resolve -> CAS window to cut retry rate under
// contention (spec §5: "implementations MAY additionally use a per-match
// mutex to reduce retries"). It is never the correctness mechanism — the
// storage layer's version CAS is — so a lock acquisition failure or a nil
// Locker never blocks an update from proceeding.
package lock

import "context"

// Locker acquires and releases a short-lived advisory lock keyed by match
// ID. Implementations should treat TryLock as best-effort: returning
// (false, nil) on contention is expected, not an error.
type Locker interface {
	TryLock(ctx context.Context, key string) (Handle, bool, error)
}

// Handle releases the lock it was returned from. Unlock is idempotent.
type Handle interface {
	Unlock(ctx context.Context) error
}

// NoopLocker always "acquires" immediately; used when no distributed lock
// is configured (single-instance dev/test deployments).
type NoopLocker struct{}

func (NoopLocker) TryLock(ctx context.Context, key string) (Handle, bool, error) {
	return noopHandle{}, true, nil
}

type noopHandle struct{}

func (noopHandle) Unlock(ctx context.Context) error { return nil }
