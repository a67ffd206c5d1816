package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// InsertHeralds stores herald history rows.
func (r *Repository) InsertHeralds(ctx context.Context, records []model.HeraldRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_heralds", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	const query = `
INSERT INTO herald_history (
	network,
	height,
	hash,
	status,
	reason,
	messages,
	tx_count,
	transfers,
	app_txs,
	token_ids,
	total_fees,
	block_time,
	heralded_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare heralds batch: %w", err)
	}

	for _, rec := range records {
		if err = batch.Append(
			r.network,
			rec.Height,
			rec.Hash,
			string(rec.Status),
			rec.Reason,
			rec.Messages,
			rec.TxCount,
			rec.Transfers,
			rec.AppTxs,
			rec.TokenIDs,
			rec.TotalFees,
			rec.BlockTime,
			rec.HeraldedAt,
		); err != nil {
			return fmt.Errorf("append herald: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert heralds: %w", err)
	}
	return nil
}
