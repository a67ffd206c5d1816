// Package batcher buffers writes and flushes them in rate-limited batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add after Stop.
var ErrStopped = errors.New("batcher stopped")

const finalFlushTimeout = 10 * time.Second

// FlushFunc persists one batch.
type FlushFunc[T any] func(context.Context, []T) error

type options struct {
	size       int
	interval   time.Duration
	rps        int
	maxPending int
	logger     *zap.Logger
}

// Option configures New.
type Option func(*options)

// WithSize flushes as soon as size items are buffered.
func WithSize(n int) Option {
	return func(o *options) { o.size = n }
}

// WithInterval flushes whatever is buffered every d.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithRate caps flushes per second. Zero disables the limit.
func WithRate(rps int) Option {
	return func(o *options) { o.rps = rps }
}

// WithMaxPending bounds how many items failed flushes may keep buffered. The oldest
// items are dropped first.
func WithMaxPending(n int) Option {
	return func(o *options) { o.maxPending = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Batcher buffers items and flushes them by size or interval. A failed batch stays
// buffered and is retried with the next flush.
type Batcher[T any] struct {
	flush      FlushFunc[T]
	items      chan T
	size       int
	interval   time.Duration
	maxPending int
	rl         ratelimit.Limiter
	logger     *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. Defaults: 100 items, 1s interval, 10 flushes/s, 10k pending.
func New[T any](flush FlushFunc[T], opts ...Option) *Batcher[T] {
	o := options{
		size:       100,
		interval:   time.Second,
		rps:        10,
		maxPending: 10_000,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.size < 1 {
		o.size = 1
	}
	if o.maxPending < o.size {
		o.maxPending = o.size
	}
	rl := ratelimit.NewUnlimited()
	if o.rps > 0 {
		rl = ratelimit.New(o.rps)
	}
	return &Batcher[T]{
		flush:      flush,
		items:      make(chan T, o.size*2),
		size:       o.size,
		interval:   o.interval,
		maxPending: o.maxPending,
		rl:         rl,
		logger:     o.logger,
		stop:       make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and waits for the loop to exit. It is safe to call
// more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.size)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			if dropped := len(buf) - b.maxPending; dropped > 0 {
				buf = append(buf[:0], buf[dropped:]...)
				b.logger.Error("batch not flushed; dropping oldest items", zap.Int("dropped", dropped), zap.Error(err))
				return
			}
			b.logger.Warn("batch not flushed; keeping for retry", zap.Int("size", len(buf)), zap.Error(err))
			return
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		buf = buf[:0]
	}

	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
			default:
				return
			}
		}
	}

	final := func() {
		drain()
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
		defer cancel()
		flush(flushCtx)
	}

	for {
		select {
		case <-ctx.Done():
			final()
			return

		case <-b.stop:
			final()
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.size {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
