package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/config"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/idempotency"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/indexer"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/price"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/repository/clickhouse"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/service"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/transport/natsbus"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/transport/telegram"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/metrics"
	observed "github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/pkg/btcd/rpcclient"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/transport"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/httpclient"
)

type heraldSources struct {
	blocks service.BlockSource
	tokens *indexer.Client
	prices *price.CoinGecko
}

func newSources(cfg config.Herald, logger *zap.Logger) (heraldSources, func(), error) {
	var (
		out      heraldSources
		closeFn  = func() {}
		httpOpts = []httpclient.Option{httpclient.WithTimeout(cfg.HTTPTimeout)}
	)

	if cfg.IndexerURL != "" {
		out.tokens = indexer.NewClient(cfg.IndexerURL, httpclient.New(httpOpts...), logger, indexer.WithWorkers(cfg.Workers))
	}
	if cfg.PriceURL != "" {
		out.prices = price.NewCoinGecko(cfg.PriceURL, cfg.PriceAPIKey, cfg.Fiat, cfg.Profile.Tickers, httpclient.New(httpOpts...), logger)
	}

	switch cfg.Source {
	case config.SourceIndexer:
		out.blocks = out.tokens
	case config.SourceNode:
		client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return heraldSources{}, nil, fmt.Errorf("init node rpc client: %w", err)
		}
		closeFn = func() {
			client.Shutdown()
			client.WaitForShutdown()
		}
		rpc := observed.NewObservedClient(client, metrics.NewRPCClient(cfg.Network))
		out.blocks = ecash.NewNodeSource(rpc, cfg.Workers, logger)
	default:
		return heraldSources{}, nil, fmt.Errorf("unknown block source %q", cfg.Source)
	}
	return out, closeFn, nil
}

func newDeliverers(cfg config.Herald, logger *zap.Logger) ([]service.Deliverer, func(), error) {
	var (
		deliverers []service.Deliverer
		closeFn    = func() {}
	)

	if cfg.TelegramEnabled() {
		deliverers = append(deliverers, telegram.NewSender(telegram.Config{
			BaseURL:   cfg.TelegramURL,
			Token:     cfg.TelegramToken,
			ChatID:    cfg.TelegramChatID,
			PerMinute: cfg.TelegramPerMinute,
			Silent:    cfg.TelegramSilent,
		}, httpclient.New(httpclient.WithTimeout(cfg.HTTPTimeout)), logger))
	}

	if cfg.NATSEnabled() {
		nc, err := natsbus.Connect(cfg.NATSURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect nats: %w", err)
		}
		closeFn = func() {
			if err := nc.Drain(); err != nil {
				logger.Warn("drain nats connection", zap.Error(err))
			}
		}
		deliverers = append(deliverers, natsbus.NewPublisher(nc, cfg.NATSSubject, logger))
	}
	return deliverers, closeFn, nil
}

func newLocker(ctx context.Context, cfg config.Herald, logger *zap.Logger) (*idempotency.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("no redis configured, using in-process lock")
		return nil, func() {}, nil
	}

	conn, err := idempotency.Connect(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	closeFn := func() {
		if err := conn.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}
	locker, err := idempotency.NewLocker(conn, cfg.Network, idempotency.WithLockTTL(cfg.LockTTL))
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("init locker: %w", err)
	}
	return locker, closeFn, nil
}

func newHistory(ctx context.Context, cfg config.Herald, logger *zap.Logger) (*clickhouse.History, func(), error) {
	if cfg.ClickhouseDSN == "" {
		logger.Info("no clickhouse configured, herald history disabled")
		return nil, func() {}, nil
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository(cfg.Network))
	if err != nil {
		return nil, nil, fmt.Errorf("init repository: %w", err)
	}
	history := clickhouse.NewHistory(repo, logger)
	history.Start(ctx)

	return history, func() {
		history.Stop()
		if err := repo.Close(); err != nil {
			logger.Warn("close clickhouse", zap.Error(err))
		}
	}, nil
}

func startHealthServer(ctx context.Context, addr string, health *transport.HealthHandler, logger *zap.Logger) error {
	if addr == "" {
		return nil
	}

	server := transport.NewGRPCServer(logger)
	health.Register(server)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	go func() {
		logger.Info("starting gRPC health server", zap.String("addr", addr))
		if err := server.Serve(socket); err != nil {
			logger.Error("gRPC health server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		health.Shutdown()
		server.GracefulStop()
	}()
	return nil
}

func startAdminServer(ctx context.Context, addr string, history http.Handler, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if history != nil {
		mux.Handle("/history", history)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("starting admin server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown admin server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
