// Package herald turns one block into the messages announcing it.
package herald

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/aggregator"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/classifier"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/composer"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

const defaultWorkers = 4

// Pipeline classifies, aggregates and composes a block. It holds no per-block state and
// is safe for concurrent use.
type Pipeline struct {
	classifier *classifier.Classifier
	aggregator *aggregator.Aggregator
	composer   *composer.Composer
	workers    int
	logger     *zap.Logger
}

// NewPipeline wires the pure stages together. workers bounds transaction classification
// concurrency; values below 1 use the default.
func NewPipeline(
	c *classifier.Classifier,
	a *aggregator.Aggregator,
	comp *composer.Composer,
	workers int,
	logger *zap.Logger,
) *Pipeline {
	if workers < 1 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		classifier: c,
		aggregator: a,
		composer:   comp,
		workers:    workers,
		logger:     logger.Named("pipeline"),
	}
}

// Summarize classifies every transaction of block and folds the results. Any
// precondition violation fails the whole block with model.ErrIndexerContract in the chain.
func (p *Pipeline) Summarize(ctx context.Context, block model.Block) (model.BlockSummary, error) {
	started := time.Now()
	parsed, err := p.classifier.ClassifyBlock(ctx, block.Txs, p.workers)
	if err != nil {
		return model.BlockSummary{}, fmt.Errorf("classify block %d: %w", block.Header.Height, err)
	}

	summary := p.aggregator.Aggregate(block.Header, parsed)
	p.logger.Debug("block summarized",
		zap.Uint64("height", block.Header.Height),
		zap.Int("txs", summary.TxCount),
		zap.Int("transfers", len(summary.Transfers)),
		zap.Int("app_txs", len(summary.AppTxs)),
		zap.Int("tokens", summary.TokenIDs.Cardinality()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

// Compose renders summary against the token and price snapshots. A nil prices snapshot
// renders XEC-only amounts.
func (p *Pipeline) Compose(summary model.BlockSummary, metas model.TokenMetas, prices *model.PriceSnapshot) []string {
	return p.composer.Compose(summary, metas, prices)
}

// Herald runs Summarize followed by Compose.
func (p *Pipeline) Herald(
	ctx context.Context,
	block model.Block,
	metas model.TokenMetas,
	prices *model.PriceSnapshot,
) (model.BlockSummary, []string, error) {
	summary, err := p.Summarize(ctx, block)
	if err != nil {
		return model.BlockSummary{}, nil, err
	}
	return summary, p.Compose(summary, metas, prices), nil
}
