package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// Heralds returns the history rows for heights in [from, to], ascending.
func (r *Repository) Heralds(ctx context.Context, from, to uint64) (records []model.HeraldRecord, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("heralds", err, start)
	}()

	const query = `
SELECT
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
FROM herald_history FINAL
WHERE network = ? AND height BETWEEN ? AND ?
ORDER BY height`

	rows, err := r.conn.Query(ctx, query, r.network, from, to)
	if err != nil {
		return nil, fmt.Errorf("query heralds: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			rec    model.HeraldRecord
			status string
		)
		if err = rows.Scan(
			&rec.Height,
			&rec.Hash,
			&status,
			&rec.Reason,
			&rec.Messages,
			&rec.TxCount,
			&rec.Transfers,
			&rec.AppTxs,
			&rec.TokenIDs,
			&rec.TotalFees,
			&rec.BlockTime,
			&rec.HeraldedAt,
		); err != nil {
			return nil, fmt.Errorf("scan herald: %w", err)
		}
		rec.Status = model.HeraldStatus(status)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heralds: %w", err)
	}
	return records, nil
}
