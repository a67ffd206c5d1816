package clickhouse

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/batcher"
)

const (
	historyBatchSize     = 50
	historyFlushInterval = 2 * time.Second
	historyFlushRate     = 5
)

// History buffers herald records and writes them in batches.
type History struct {
	repo    *Repository
	batcher *batcher.Batcher[model.HeraldRecord]
}

// NewHistory wraps repo with a batched writer. Call Start before RecordHerald.
func NewHistory(repo *Repository, logger *zap.Logger) *History {
	return &History{
		repo: repo,
		batcher: batcher.New(repo.InsertHeralds,
			batcher.WithSize(historyBatchSize),
			batcher.WithInterval(historyFlushInterval),
			batcher.WithRate(historyFlushRate),
			batcher.WithLogger(logger.Named("history")),
		),
	}
}

func (h *History) Start(ctx context.Context) { h.batcher.Start(ctx) }

// Stop flushes buffered records.
func (h *History) Stop() { h.batcher.Stop() }

func (h *History) RecordHerald(ctx context.Context, record model.HeraldRecord) error {
	return h.batcher.Add(ctx, record)
}

func (h *History) LastHeraldedHeight(ctx context.Context) (uint64, bool, error) {
	return h.repo.LastHeraldedHeight(ctx)
}

func (h *History) Heralds(ctx context.Context, from, to uint64) ([]model.HeraldRecord, error) {
	return h.repo.Heralds(ctx, from, to)
}
