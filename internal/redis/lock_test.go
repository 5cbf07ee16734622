package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryConn understands the handful of commands the locker sends.
type memoryConn struct {
	mu   *sync.Mutex
	data map[string]string
	ttls map[string]int64
}

func (c *memoryConn) Close() error { return nil }
func (c *memoryConn) Err() error   { return nil }

func (c *memoryConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd {
	case "":
		return nil, nil
	case "SET":
		key := args[0].(string)
		if _, ok := c.data[key]; ok {
			return nil, nil
		}
		c.data[key] = args[1].(string)
		c.ttls[key] = args[4].(int64)
		return "OK", nil
	case "EVALSHA":
		key, token := args[2].(string), args[3].(string)
		if c.data[key] != token {
			return int64(0), nil
		}
		delete(c.data, key)
		return int64(1), nil
	}

	return nil, fmt.Errorf("unexpected command %s", cmd)
}

func (c *memoryConn) Send(string, ...interface{}) error { return nil }
func (c *memoryConn) Flush() error                      { return nil }
func (c *memoryConn) Receive() (interface{}, error)     { return nil, nil }

func newMemoryPool() (*redis.Pool, *memoryConn) {
	conn := &memoryConn{mu: &sync.Mutex{}, data: map[string]string{}, ttls: map[string]int64{}}
	pool := &redis.Pool{
		DialContext: func(context.Context) (redis.Conn, error) {
			return conn, nil
		},
	}
	return pool, conn
}

func TestLocker(t *testing.T) {
	ctx := context.Background()
	pool, conn := newMemoryPool()
	locker := NewLocker(pool, 30*time.Second)

	unlock, err := locker.Lock(ctx, "recurrence:1")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), conn.ttls["lock:recurrence:1"])

	_, err = locker.Lock(ctx, "recurrence:1")
	require.ErrorIs(t, err, model.ErrLocked)

	other, err := locker.Lock(ctx, "recurrence:2")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	assert.NotContains(t, conn.data, "lock:recurrence:1")

	unlock, err = locker.Lock(ctx, "recurrence:1")
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestUnlockLeavesForeignLock(t *testing.T) {
	ctx := context.Background()
	pool, conn := newMemoryPool()
	locker := NewLocker(pool, time.Second)

	unlock, err := locker.Lock(ctx, "k")
	require.NoError(t, err)

	// the lock expired and another worker took it over
	conn.data["lock:k"] = "someone-else"

	require.NoError(t, unlock(ctx))
	assert.Equal(t, "someone-else", conn.data["lock:k"])
}
