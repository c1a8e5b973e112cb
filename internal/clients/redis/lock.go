package redis

import (
	"adcraft-server/internal/observability"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockNotAcquired is returned when another holder owns the lock
	ErrLockNotAcquired = errors.New("lock not acquired")
	// ErrLockNotHeld is returned when releasing or extending a lock we no longer own
	ErrLockNotHeld = errors.New("lock not held")
)

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

var extendScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("pexpire", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// Lock is a held advisory lock
type Lock struct {
	rdb   *redis.Client
	key   string
	value string
	ttl   time.Duration
}

// Locker hands out advisory locks keyed by resource, e.g. "ad:<id>".
type Locker struct {
	client    *Client
	keyPrefix string
	logger    *observability.Logger
}

// NewLocker creates a Locker. With a nil client every lock is granted
// immediately, which keeps single-instance deployments working without Redis.
func NewLocker(client *Client, keyPrefix string, logger *observability.Logger) *Locker {
	if keyPrefix == "" {
		keyPrefix = "lock:"
	}
	return &Locker{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Enabled reports whether locks are backed by Redis
func (l *Locker) Enabled() bool {
	return l.client.GetClient() != nil
}

// Acquire takes the lock or returns ErrLockNotAcquired when it is held elsewhere
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	rdb := l.client.GetClient()
	if rdb == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	lockKey := l.keyPrefix + key
	lockValue := uuid.New().String()

	ok, err := rdb.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	return &Lock{rdb: rdb, key: lockKey, value: lockValue, ttl: ttl}, nil
}

// Release deletes the lock if we still own it
func (lock *Lock) Release(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, lock.rdb, []string{lock.key}, lock.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", lock.key, err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Extend resets the TTL if we still own the lock
func (lock *Lock) Extend(ctx context.Context, ttl time.Duration) error {
	result, err := extendScript.Run(ctx, lock.rdb, []string{lock.key}, lock.value, ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to extend lock %s: %w", lock.key, err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	lock.ttl = ttl
	return nil
}

// WithLock runs fn while holding key. Contention returns ErrLockNotAcquired
// without running fn. If Redis itself is unreachable the failure is logged
// and fn runs unlocked; the database constraints still serialize writers.
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	if !l.Enabled() {
		return fn()
	}

	lock, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		if errors.Is(err, ErrLockNotAcquired) {
			return err
		}
		l.logger.Error(ctx, "advisory lock unavailable, continuing without it", err)
		return fn()
	}
	defer func() {
		// Release on a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil {
			l.logger.Warn(ctx, "failed to release advisory lock",
				observability.Field{Key: "lock_key", Value: lock.key},
				observability.Field{Key: "error", Value: err.Error()},
			)
		}
	}()

	return fn()
}
