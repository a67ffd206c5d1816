// Package service runs the herald daemon: it follows the chain tip and heralds each new
// block exactly once.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/clock"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/retry"
)

// Dependencies groups the collaborators of a FollowerService. Tokens, Prices, History
// and Health are optional.
type Dependencies struct {
	Source     BlockSource
	Tokens     TokenSource
	Prices     PriceSource
	Pipeline   Pipeline
	Deliverers []Deliverer
	Locker     Locker
	History    HistoryRepository
	Metrics    HeraldMetrics
	Health     HealthReporter
}

// Options tunes the follower loop.
type Options struct {
	// StartHeight is the first height to herald when history has nothing newer. Zero
	// starts at the chain tip.
	StartHeight  uint64
	PollInterval time.Duration
}

// FollowerService heralds blocks in strictly ascending height order.
type FollowerService struct {
	logger        *zap.Logger
	metrics       HeraldMetrics
	health        HealthReporter
	source        BlockSource
	history       HistoryRepository
	heralder      BlockHeralder
	sleep         func(context.Context, time.Duration) error
	sleepDuration time.Duration
	pollInterval  time.Duration
	startHeight   uint64
	next          uint64
	blockSignal   <-chan struct{}
}

// NewFollowerService builds a FollowerService. blockSignal, when set, wakes the loop
// before the poll interval elapses.
func NewFollowerService(
	deps Dependencies,
	opts Options,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*FollowerService, error) {
	if deps.Metrics == nil {
		return nil, errors.New("herald metrics is required")
	}
	if deps.Source == nil || deps.Pipeline == nil {
		return nil, errors.New("block source and pipeline are required")
	}
	if len(deps.Deliverers) == 0 {
		return nil, errors.New("at least one deliverer is required")
	}
	if deps.Locker == nil {
		deps.Locker = newLocalLocker()
	}
	if deps.Health == nil {
		deps.Health = nopHealth{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	logger = logger.Named("follower")

	return &FollowerService{
		logger:        logger,
		metrics:       deps.Metrics,
		health:        deps.Health,
		source:        deps.Source,
		history:       deps.History,
		sleep:         clock.SleepWithContext,
		sleepDuration: errorSleepDuration,
		pollInterval:  opts.PollInterval,
		startHeight:   opts.StartHeight,
		blockSignal:   blockSignal,
		heralder: &blockHeralder{
			source:     deps.Source,
			tokens:     deps.Tokens,
			prices:     deps.Prices,
			pipeline:   deps.Pipeline,
			deliverers: deps.Deliverers,
			locker:     deps.Locker,
			history:    deps.History,
			metrics:    deps.Metrics,
			retry: retry.New(
				retry.WithAttempts(snapshotAttempts),
				retry.WithDelay(snapshotDelay),
				retry.WithMaxDelay(snapshotMaxDelay),
			),
			now:    time.Now,
			logger: logger.Named("heralder"),
		},
	}, nil
}

// Run follows the chain until the context is canceled.
func (s *FollowerService) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.wait(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *FollowerService) run(ctx context.Context) error {
	started := time.Now()
	latest, err := s.source.LatestHeight(ctx)
	s.metrics.ObserveLatestHeight(err, started)
	if err != nil {
		s.health.SetServing(false)
		return fmt.Errorf("latest height: %w", err)
	}
	s.health.SetServing(true)

	if s.next == 0 {
		if s.next, err = s.resume(ctx, latest); err != nil {
			return err
		}
		s.logger.Info("following chain", zap.Uint64("from", s.next), zap.Uint64("tip", latest))
	}

	if s.next > latest {
		s.logger.Debug("no new blocks; sleeping", zap.Duration("sleep", s.pollInterval))
		return s.wait(ctx, s.pollInterval)
	}

	for height := s.next; height <= latest; height++ {
		if err = s.heralder.Herald(ctx, height); err != nil {
			return err
		}
		s.next = height + 1
	}
	return nil
}

// resume picks the first height to herald: after the last heralded block, never below
// the configured start, and at the tip when neither is known.
func (s *FollowerService) resume(ctx context.Context, latest uint64) (uint64, error) {
	next := s.startHeight
	if s.history != nil {
		last, ok, err := s.history.LastHeraldedHeight(ctx)
		if err != nil {
			return 0, fmt.Errorf("last heralded height: %w", err)
		}
		if ok && last+1 > next {
			next = last + 1
		}
	}
	if next == 0 {
		next = latest
	}
	return next, nil
}

func (s *FollowerService) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.WaitForSignal(ctx, d, s.blockSignal)
}
