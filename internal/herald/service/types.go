package service

import (
	"context"
	"time"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.Block, error)
	}
	TokenSource interface {
		TokenMetas(ctx context.Context, tokenIDs []string) (model.TokenMetas, error)
	}
	PriceSource interface {
		Prices(ctx context.Context) (*model.PriceSnapshot, error)
	}
	Pipeline interface {
		Summarize(ctx context.Context, block model.Block) (model.BlockSummary, error)
		Compose(summary model.BlockSummary, metas model.TokenMetas, prices *model.PriceSnapshot) []string
	}
	Deliverer interface {
		Name() string
		Deliver(ctx context.Context, height uint64, messages []string) error
	}
	Locker interface {
		TryAcquire(ctx context.Context, height uint64) (bool, error)
		Release(ctx context.Context, height uint64) error
		MarkProcessed(ctx context.Context, height uint64) error
	}
	HistoryRepository interface {
		LastHeraldedHeight(ctx context.Context) (uint64, bool, error)
		RecordHerald(ctx context.Context, record model.HeraldRecord) error
	}
	BlockHeralder interface {
		Herald(ctx context.Context, height uint64) error
	}
	HeraldMetrics interface {
		ObserveLatestHeight(err error, started time.Time)
		ObserveBlock(status string, started time.Time)
		ObserveMessages(count int)
		ObserveDelivery(transport string, err error)
		ObserveSnapshot(kind string, err error)
	}
	HealthReporter interface {
		SetServing(serving bool)
	}
)
