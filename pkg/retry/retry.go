// Package retry runs operations with exponential backoff on top of retry-go.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds or the attempts run out.
type Retry interface {
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
	onRetry     func(attempt uint, err error)
}

// Option configures New.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry making 3 attempts with a 1s base delay capped at 5s by default.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &retrier{cfg: cfg}
}

// Execute runs operation, retrying failures with exponential backoff. Context
// cancellation stops the retries.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retrygo.Option{
		retrygo.Attempts(r.cfg.attempts),
		retrygo.Delay(r.cfg.delay),
		retrygo.MaxDelay(r.cfg.maxDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.LastErrorOnly(r.cfg.lastErrOnly),
		retrygo.Context(ctx),
	}
	if r.cfg.onRetry != nil {
		options = append(options, retrygo.OnRetry(r.cfg.onRetry))
	}
	return retrygo.Do(operation, options...)
}

// WithAttempts sets the total number of attempts.
func WithAttempts(n uint) Option {
	return func(c *config) { c.attempts = n }
}

// WithDelay sets the base backoff delay.
func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) { c.maxDelay = d }
}

// WithLastErrorOnly returns only the final error instead of every attempt's.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) { c.lastErrOnly = b }
}

// WithOnRetry registers a callback invoked after each failed attempt.
func WithOnRetry(fn func(attempt uint, err error)) Option {
	return func(c *config) { c.onRetry = fn }
}

// Unrecoverable marks err so Execute stops retrying immediately.
func Unrecoverable(err error) error {
	return retrygo.Unrecoverable(err)
}
