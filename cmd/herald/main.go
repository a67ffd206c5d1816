// Command herald follows the eCash chain and posts a summary of every new block.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/config"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/aggregator"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/classifier"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/composer"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/service"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/metrics"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/transport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("herald failed", zap.Error(err))
	}
	logger.Info("herald stopped")
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config.Herald, logger *zap.Logger) error {
	logger = logger.With(zap.String("network", cfg.Network))
	heraldMetrics := metrics.NewHerald(cfg.Network)

	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	sources, closeSources, err := newSources(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	deliverers, closeDeliverers, err := newDeliverers(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDeliverers()

	deps := service.Dependencies{
		Source:     sources.blocks,
		Pipeline:   pipeline,
		Deliverers: deliverers,
		Metrics:    heraldMetrics,
	}
	if sources.tokens != nil {
		deps.Tokens = sources.tokens
	}
	if sources.prices != nil {
		deps.Prices = sources.prices
	}

	locker, closeLocker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()
	if locker != nil {
		deps.Locker = locker
	}

	history, closeHistory, err := newHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeHistory()
	var historyHandler http.Handler
	if history != nil {
		deps.History = history
		historyHandler = transport.NewHistoryHandler(history, logger)
	}

	healthHandler := transport.NewHealthHandler()
	deps.Health = healthHandler
	if err = startHealthServer(ctx, cfg.HealthAddr, healthHandler, logger); err != nil {
		return err
	}
	startAdminServer(ctx, cfg.MetricsAddr, historyHandler, logger)

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("start block signal: %w", err)
	}

	svc, err := service.NewFollowerService(deps, service.Options{
		StartHeight:  cfg.StartHeight,
		PollInterval: cfg.PollInterval,
	}, logger, blockSignal)
	if err != nil {
		return fmt.Errorf("init follower: %w", err)
	}

	logger.Info("herald started",
		zap.String("source", cfg.Source),
		zap.Int("deliverers", len(deliverers)),
		zap.Bool("history", history != nil),
		zap.Bool("distributed_lock", locker != nil),
	)
	return svc.Run(ctx)
}

func newPipeline(cfg config.Herald, logger *zap.Logger) (*herald.Pipeline, error) {
	registry, err := ecash.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("init protocol registry: %w", err)
	}
	return herald.NewPipeline(
		classifier.New(registry),
		aggregator.New(cfg.Profile.AggregatorOptions()),
		composer.New(composer.Options{
			MaxMessageLength: cfg.MaxMessageLength,
			MaxMessages:      cfg.MaxMessages,
			PriceTickers:     cfg.Profile.Tickers,
		}),
		cfg.Workers,
		logger,
	), nil
}
