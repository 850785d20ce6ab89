package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLocker(t *testing.T) *RedisLocker {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisLocker(client, "lock:match:", 5*time.Second)
}

func TestTryLockExcludesSecondHolder(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()

	h1, ok1, err := l.TryLock(ctx, "m1")
	if err != nil || !ok1 {
		t.Fatalf("expected first lock to succeed: ok=%v err=%v", ok1, err)
	}

	_, ok2, err := l.TryLock(ctx, "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok2 {
		t.Fatal("expected second holder to be excluded while the lock is held")
	}

	if err := h1.Unlock(ctx); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	_, ok3, err := l.TryLock(ctx, "m1")
	if err != nil || !ok3 {
		t.Fatalf("expected lock to be acquirable after unlock: ok=%v err=%v", ok3, err)
	}
}

func TestUnlockDoesNotReleaseAnotherHoldersLock(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()

	h1, _, _ := l.TryLock(ctx, "m2")

	// Simulate h1's lock expiring and someone else acquiring it.
	if err := h1.Unlock(ctx); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	h2, ok, _ := l.TryLock(ctx, "m2")
	if !ok {
		t.Fatal("expected m2 to be lockable again")
	}

	// h1 trying to unlock again (stale token) must not evict h2's lock.
	_ = h1.Unlock(ctx)

	_, ok3, _ := l.TryLock(ctx, "m2")
	if ok3 {
		t.Fatal("h2's lock must still be held; a stale unlock must not have removed it")
	}
	_ = h2
}
