package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the lock key only if it still holds the token this
// holder set, so a holder can never release a lock it no longer owns (e.g.
// after its TTL expired and someone else acquired it).
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker backs Locker with a Redis `SET NX PX` acquire and a Lua
// compare-and-delete release, the same acquire/release shape as the
// teacher pack's Redis rate limiter (middleware_ratelimit_redis.go), applied
// here to mutual exclusion instead of request counting.
type RedisLocker struct {
	client     redis.UniversalClient
	keyPrefix  string
	ttl        time.Duration
	unlockSHA  *redis.Script
}

// NewRedisLocker builds a locker that prefixes keys with keyPrefix and
// holds each lock for ttl before it auto-expires.
func NewRedisLocker(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		unlockSHA: redis.NewScript(unlockScript),
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (Handle, bool, error) {
	token := uuid.NewString()
	redisKey := l.keyPrefix + key

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return &redisHandle{locker: l, key: redisKey, token: token}, true, nil
}

type redisHandle struct {
	locker *RedisLocker
	key    string
	token  string
}

func (h *redisHandle) Unlock(ctx context.Context) error {
	return h.locker.unlockSHA.Run(ctx, h.locker.client, []string{h.key}, h.token).Err()
}
