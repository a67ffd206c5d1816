package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/retry"
)

// ErrAllTransportsFailed is returned when no transport accepted a herald.
var ErrAllTransportsFailed = errors.New("all transports failed")

type blockHeralder struct {
	source     BlockSource
	tokens     TokenSource
	prices     PriceSource
	pipeline   Pipeline
	deliverers []Deliverer
	locker     Locker
	history    HistoryRepository
	metrics    HeraldMetrics
	retry      retry.Retry
	now        func() time.Time
	logger     *zap.Logger
}

// Herald handles one height end to end. A height already heralded, or held by another
// instance, is skipped without error.
func (h *blockHeralder) Herald(ctx context.Context, height uint64) error {
	started := time.Now()
	logger := h.logger.With(zap.Uint64("height", height))

	acquired, err := h.locker.TryAcquire(ctx, height)
	if err != nil {
		h.metrics.ObserveBlock(statusFailed, started)
		return fmt.Errorf("acquire lock for height %d: %w", height, err)
	}
	if !acquired {
		logger.Info("height already heralded or in progress; skipping")
		h.metrics.ObserveBlock(statusSkipped, started)
		return nil
	}

	status, err := h.herald(ctx, height, logger)
	if err != nil {
		if releaseErr := h.locker.Release(context.WithoutCancel(ctx), height); releaseErr != nil {
			logger.Warn("release lock failed", zap.Error(releaseErr))
		}
		h.metrics.ObserveBlock(statusFailed, started)
		return err
	}

	if err = h.locker.MarkProcessed(ctx, height); err != nil {
		logger.Error("mark processed failed", zap.Error(err))
	}
	h.metrics.ObserveBlock(status, started)
	return nil
}

func (h *blockHeralder) herald(ctx context.Context, height uint64, logger *zap.Logger) (string, error) {
	block, err := h.source.FetchBlock(ctx, height)
	if errors.Is(err, model.ErrIndexerContract) {
		// No trusted header came back; only the height is known.
		logger.Warn("block rejected", zap.Error(err))
		h.record(ctx, model.NewRejectedRecord(model.BlockHeader{Height: height}, err.Error(), h.now()), logger)
		return statusRejected, nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch block %d: %w", height, err)
	}

	summary, err := h.pipeline.Summarize(ctx, *block)
	if errors.Is(err, model.ErrIndexerContract) {
		logger.Warn("block rejected", zap.Error(err))
		h.record(ctx, model.NewRejectedRecord(block.Header, err.Error(), h.now()), logger)
		return statusRejected, nil
	}
	if err != nil {
		return "", err
	}

	metas := h.tokenMetas(ctx, summary, logger)
	prices := h.priceSnapshot(ctx, logger)
	messages := h.pipeline.Compose(summary, metas, prices)
	h.metrics.ObserveMessages(len(messages))

	if err = h.deliver(ctx, height, messages, logger); err != nil {
		return "", err
	}
	logger.Info("block heralded", zap.String("hash", summary.Hash), zap.Int("messages", len(messages)))

	h.record(ctx, model.NewHeraldRecord(summary, len(messages), h.now()), logger)
	return statusDelivered, nil
}

// tokenMetas degrades to an empty snapshot when the token source keeps failing.
func (h *blockHeralder) tokenMetas(ctx context.Context, summary model.BlockSummary, logger *zap.Logger) model.TokenMetas {
	if h.tokens == nil || summary.TokenIDs == nil || summary.TokenIDs.Cardinality() == 0 {
		return model.TokenMetas{}
	}
	ids := summary.TokenIDs.ToSlice()
	sort.Strings(ids)

	var metas model.TokenMetas
	err := h.retry.Execute(ctx, func() error {
		var fetchErr error
		metas, fetchErr = h.tokens.TokenMetas(ctx, ids)
		return fetchErr
	})
	h.metrics.ObserveSnapshot(snapshotTokens, err)
	if err != nil {
		logger.Warn("token metadata unavailable; rendering raw amounts", zap.Int("tokens", len(ids)), zap.Error(err))
		return model.TokenMetas{}
	}
	return metas
}

// priceSnapshot degrades to nil, which renders XEC-only amounts.
func (h *blockHeralder) priceSnapshot(ctx context.Context, logger *zap.Logger) *model.PriceSnapshot {
	if h.prices == nil {
		return nil
	}
	var snapshot *model.PriceSnapshot
	err := h.retry.Execute(ctx, func() error {
		var fetchErr error
		snapshot, fetchErr = h.prices.Prices(ctx)
		return fetchErr
	})
	h.metrics.ObserveSnapshot(snapshotPrices, err)
	if err != nil {
		logger.Warn("price data unavailable", zap.Error(err))
		return nil
	}
	return snapshot
}

func (h *blockHeralder) deliver(ctx context.Context, height uint64, messages []string, logger *zap.Logger) error {
	var errs []error
	for _, d := range h.deliverers {
		err := d.Deliver(ctx, height, messages)
		h.metrics.ObserveDelivery(d.Name(), err)
		if err != nil {
			logger.Warn("delivery failed", zap.String("transport", d.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
		}
	}
	if len(errs) == len(h.deliverers) {
		return fmt.Errorf("deliver height %d: %w", height, errors.Join(append([]error{ErrAllTransportsFailed}, errs...)...))
	}
	return nil
}

// record failures are logged, never returned.
func (h *blockHeralder) record(ctx context.Context, rec model.HeraldRecord, logger *zap.Logger) {
	if h.history == nil {
		return
	}
	if err := h.history.RecordHerald(ctx, rec); err != nil {
		logger.Error("record herald history failed", zap.String("status", string(rec.Status)), zap.Error(err))
	}
}
