package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// LastHeraldedHeight returns the highest height with history. ok is false when the
// network has none.
func (r *Repository) LastHeraldedHeight(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("last_heralded_height", err, start)
	}()

	const query = `
SELECT coalesce(max(height), toUInt64(0)) AS max_height, count() AS rows
FROM herald_history
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, r.network)
	if err != nil {
		return 0, false, fmt.Errorf("query last heralded height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, fmt.Errorf("last heralded height not found")
	}

	var count uint64
	if err = rows.Scan(&height, &count); err != nil {
		return 0, false, fmt.Errorf("scan last heralded height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate last heralded height: %w", err)
	}

	return height, count > 0, nil
}
