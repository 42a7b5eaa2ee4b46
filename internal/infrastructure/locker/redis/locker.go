package redislocker

import (
	"context"
	"fmt"
	"time"

	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "offerd:lock:"

// Deletes the key only if it still holds the token of the caller, so that an
// expired lease taken over by another process is not released by mistake.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type locker struct {
	rdb        *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

// NewLocker returns a lease based locker shared by every offerd instance
// pointing to the same redis. A lease lasts at most ttl.
func NewLocker(rdb *redis.Client, ttl time.Duration) ports.KeyLocker {
	return &locker{
		rdb:        rdb,
		ttl:        ttl,
		retryDelay: 10 * time.Millisecond,
	}
}

func (l *locker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.New().String()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}

	return func() {
		// The lease must be released even if the caller ctx is already done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.rdb, []string{redisKey}, token).Err(); err != nil {
			log.WithError(err).Warnf("failed to release lock %s", key)
		}
	}, nil
}

func (l *locker) Close() {
	if err := l.rdb.Close(); err != nil {
		log.WithError(err).Warn("failed to close redis client")
	}
}
