// Package idempotency guarantees a block is heralded once across concurrent instances.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "herald"

	DefaultLockTTL      = 5 * time.Minute
	DefaultProcessedTTL = 30 * 24 * time.Hour
)

// releaseScript deletes the lock only while it is still held by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker holds per-height processing locks in Redis. Each Locker has its own owner id,
// so a lock can only be released by the instance that took it.
type Locker struct {
	conn         redis.UniversalClient
	network      string
	owner        string
	lockTTL      time.Duration
	processedTTL time.Duration
}

// Option configures a Locker.
type Option func(*Locker)

// WithLockTTL bounds how long a crashed instance can hold a height.
func WithLockTTL(d time.Duration) Option {
	return func(l *Locker) {
		if d > 0 {
			l.lockTTL = d
		}
	}
}

// WithProcessedTTL sets how long processed markers are kept.
func WithProcessedTTL(d time.Duration) Option {
	return func(l *Locker) {
		if d > 0 {
			l.processedTTL = d
		}
	}
}

// Connect opens a Redis client and checks it with PING.
func Connect(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return conn, nil
}

// NewLocker returns a Locker scoped to network.
func NewLocker(conn redis.UniversalClient, network string, opts ...Option) (*Locker, error) {
	owner, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate lock owner: %w", err)
	}
	l := &Locker{
		conn:         conn,
		network:      network,
		owner:        owner.String(),
		lockTTL:      DefaultLockTTL,
		processedTTL: DefaultProcessedTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func lockKey(network string, height uint64) string {
	return fmt.Sprintf("%s:lock:%s:%d", keyPrefix, network, height)
}

func processedKey(network string, height uint64) string {
	return fmt.Sprintf("%s:processed:%s:%d", keyPrefix, network, height)
}

// TryAcquire takes the lock for height. It returns false when the height was already
// processed or another owner holds the lock.
func (l *Locker) TryAcquire(ctx context.Context, height uint64) (bool, error) {
	processed, err := l.conn.Exists(ctx, processedKey(l.network, height)).Result()
	if err != nil {
		return false, fmt.Errorf("check processed: %w", err)
	}
	if processed > 0 {
		return false, nil
	}

	ok, err := l.conn.SetNX(ctx, lockKey(l.network, height), l.owner, l.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock for height if this Locker still owns it.
func (l *Locker) Release(ctx context.Context, height uint64) error {
	if err := releaseScript.Run(ctx, l.conn, []string{lockKey(l.network, height)}, l.owner).Err(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// MarkProcessed records height as heralded and releases its lock.
func (l *Locker) MarkProcessed(ctx context.Context, height uint64) error {
	if err := l.conn.Set(ctx, processedKey(l.network, height), l.owner, l.processedTTL).Err(); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return l.Release(ctx, height)
}
