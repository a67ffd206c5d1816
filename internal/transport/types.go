//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package transport

import (
	"context"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

type (
	// HeraldHistory reads recorded heralds.
	HeraldHistory interface {
		Heralds(ctx context.Context, from, to uint64) ([]model.HeraldRecord, error)
	}
)
