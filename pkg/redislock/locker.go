package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boxoffice/internal/shared/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when another instance holds the lock
var ErrNotAcquired = errors.New("lock not acquired")

// Compare-and-delete so an instance never releases a lock it no longer owns
var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// Locker is a gocron distributed locker backed by a single Redis key per job
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

var _ gocron.Locker = (*Locker)(nil)

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

func (l *Locker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	redisKey := constants.BuildLockKey(key)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return &lock{client: l.client, key: redisKey, token: token}, nil
}

type lock struct {
	client *redis.Client
	key    string
	token  string
}

func (l *lock) Unlock(ctx context.Context) error {
	if err := unlockScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
