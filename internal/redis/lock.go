package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
)

const lockPrefix = "lock:"

var unlockScript = redis.NewScript(1, `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type Locker struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewLocker(pool *redis.Pool, ttl time.Duration) *Locker {
	return &Locker{pool: pool, ttl: ttl}
}

// Lock fails with model.ErrLocked while somebody else holds key.
func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	token := uuid.NewString()
	_, err = redis.String(conn.Do("SET", lockPrefix+key, token, "NX", "PX", l.ttl.Milliseconds()))
	if errors.Is(err, redis.ErrNil) {
		return nil, model.ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", key, err)
	}

	return func(ctx context.Context) error {
		conn, err := l.pool.GetContext(ctx)
		if err != nil {
			return fmt.Errorf("get redis connection: %w", err)
		}
		defer conn.Close()

		if _, err := unlockScript.Do(conn, lockPrefix+key, token); err != nil {
			return fmt.Errorf("release lock %q: %w", key, err)
		}

		return nil
	}, nil
}
