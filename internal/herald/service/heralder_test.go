package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/retry"
)

var heraldedAt = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

type heralderMocks struct {
	source   *MockBlockSource
	tokens   *MockTokenSource
	prices   *MockPriceSource
	pipeline *MockPipeline
	telegram *MockDeliverer
	nats     *MockDeliverer
	locker   *MockLocker
	history  *MockHistoryRepository
	metrics  *MockHeraldMetrics
}

func newHeralderMocks(ctrl *gomock.Controller) heralderMocks {
	m := heralderMocks{
		source:   NewMockBlockSource(ctrl),
		tokens:   NewMockTokenSource(ctrl),
		prices:   NewMockPriceSource(ctrl),
		pipeline: NewMockPipeline(ctrl),
		telegram: NewMockDeliverer(ctrl),
		nats:     NewMockDeliverer(ctrl),
		locker:   NewMockLocker(ctrl),
		history:  NewMockHistoryRepository(ctrl),
		metrics:  NewMockHeraldMetrics(ctrl),
	}
	m.telegram.EXPECT().Name().Return("telegram").AnyTimes()
	m.nats.EXPECT().Name().Return("nats").AnyTimes()
	return m
}

func (m heralderMocks) heralder() *blockHeralder {
	return &blockHeralder{
		source:     m.source,
		tokens:     m.tokens,
		prices:     m.prices,
		pipeline:   m.pipeline,
		deliverers: []Deliverer{m.telegram, m.nats},
		locker:     m.locker,
		history:    m.history,
		metrics:    m.metrics,
		retry:      retry.New(retry.WithAttempts(2), retry.WithDelay(time.Millisecond), retry.WithMaxDelay(time.Millisecond)),
		now:        func() time.Time { return heraldedAt },
		logger:     zap.NewNop(),
	}
}

func testBlock() *model.Block {
	return &model.Block{Header: model.BlockHeader{Height: 100, Hash: "blockhash", Timestamp: 1_700_000_000, NumTxs: 3}}
}

func testSummary() model.BlockSummary {
	return model.BlockSummary{
		Height:        100,
		Hash:          "blockhash",
		Timestamp:     1_700_000_000,
		TxCount:       3,
		TotalFees:     1_500,
		TokenIDs:      mapset.NewSet("token-b", "token-a"),
		OutputScripts: mapset.NewSet[model.Script](),
		Transfers:     []model.ParsedTx{{TxID: "t1"}, {TxID: "t2"}},
	}
}

func TestBlockHeralder_Herald(t *testing.T) {
	t.Parallel()

	metas := model.TokenMetas{"token-a": {TokenID: "token-a", Ticker: "A"}}
	prices := &model.PriceSnapshot{Fiat: "usd"}
	messages := []string{"first", "second"}
	sendErr := errors.New("nats down")

	tests := []struct {
		name    string
		prepare func(t *testing.T, m heralderMocks)
		wantErr error
	}{
		{
			name: "delivers and records",
			prepare: func(t *testing.T, m heralderMocks) {
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(testBlock(), nil)
				m.pipeline.EXPECT().Summarize(gomock.Any(), *testBlock()).Return(testSummary(), nil)
				m.tokens.EXPECT().TokenMetas(gomock.Any(), []string{"token-a", "token-b"}).Return(metas, nil)
				m.metrics.EXPECT().ObserveSnapshot(snapshotTokens, nil)
				m.prices.EXPECT().Prices(gomock.Any()).Return(prices, nil)
				m.metrics.EXPECT().ObserveSnapshot(snapshotPrices, nil)
				m.pipeline.EXPECT().Compose(gomock.Any(), metas, prices).Return(messages)
				m.metrics.EXPECT().ObserveMessages(2)
				m.telegram.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(nil)
				m.metrics.EXPECT().ObserveDelivery("telegram", nil)
				m.nats.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(sendErr)
				m.metrics.EXPECT().ObserveDelivery("nats", sendErr)
				m.history.EXPECT().RecordHerald(gomock.Any(), model.HeraldRecord{
					Height:     100,
					Hash:       "blockhash",
					Status:     model.HeraldDelivered,
					Messages:   2,
					TxCount:    3,
					Transfers:  2,
					TokenIDs:   2,
					TotalFees:  1_500,
					BlockTime:  time.Unix(1_700_000_000, 0).UTC(),
					HeraldedAt: heraldedAt,
				}).Return(nil)
				m.locker.EXPECT().MarkProcessed(gomock.Any(), uint64(100)).Return(nil)
				m.metrics.EXPECT().ObserveBlock(statusDelivered, gomock.Any())
			},
		},
		{
			name: "skips a height held elsewhere",
			prepare: func(t *testing.T, m heralderMocks) {
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(false, nil)
				m.metrics.EXPECT().ObserveBlock(statusSkipped, gomock.Any())
			},
		},
		{
			name: "records a rejected block without delivering",
			prepare: func(t *testing.T, m heralderMocks) {
				contractErr := fmt.Errorf("tx abc: negative fee: %w", model.ErrIndexerContract)
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(testBlock(), nil)
				m.pipeline.EXPECT().Summarize(gomock.Any(), *testBlock()).Return(model.BlockSummary{}, contractErr)
				m.history.EXPECT().RecordHerald(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, rec model.HeraldRecord) error {
						assert.Equal(t, model.HeraldRejected, rec.Status)
						assert.Equal(t, uint64(100), rec.Height)
						assert.Contains(t, rec.Reason, "negative fee")
						return nil
					})
				m.locker.EXPECT().MarkProcessed(gomock.Any(), uint64(100)).Return(nil)
				m.metrics.EXPECT().ObserveBlock(statusRejected, gomock.Any())
			},
		},
		{
			name: "records a rejected block when the fetched block breaks the indexer contract",
			prepare: func(t *testing.T, m heralderMocks) {
				contractErr := fmt.Errorf("block 100: got 2 txs, header has 3: %w", model.ErrIndexerContract)
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(nil, contractErr)
				m.history.EXPECT().RecordHerald(gomock.Any(), model.HeraldRecord{
					Height:     100,
					Status:     model.HeraldRejected,
					Reason:     contractErr.Error(),
					BlockTime:  time.Unix(0, 0).UTC(),
					HeraldedAt: heraldedAt,
				}).Return(nil)
				m.locker.EXPECT().MarkProcessed(gomock.Any(), uint64(100)).Return(nil)
				m.metrics.EXPECT().ObserveBlock(statusRejected, gomock.Any())
			},
		},
		{
			name: "degrades to empty snapshots",
			prepare: func(t *testing.T, m heralderMocks) {
				tokenErr := errors.New("indexer unavailable")
				priceErr := errors.New("rate limited")
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(testBlock(), nil)
				m.pipeline.EXPECT().Summarize(gomock.Any(), *testBlock()).Return(testSummary(), nil)
				m.tokens.EXPECT().TokenMetas(gomock.Any(), gomock.Any()).Return(nil, tokenErr).Times(2)
				m.metrics.EXPECT().ObserveSnapshot(snapshotTokens, tokenErr)
				m.prices.EXPECT().Prices(gomock.Any()).Return(nil, priceErr).Times(2)
				m.metrics.EXPECT().ObserveSnapshot(snapshotPrices, priceErr)
				m.pipeline.EXPECT().Compose(gomock.Any(), model.TokenMetas{}, (*model.PriceSnapshot)(nil)).Return(messages)
				m.metrics.EXPECT().ObserveMessages(2)
				m.telegram.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(nil)
				m.nats.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(nil)
				m.metrics.EXPECT().ObserveDelivery(gomock.Any(), nil).Times(2)
				m.history.EXPECT().RecordHerald(gomock.Any(), gomock.Any()).Return(nil)
				m.locker.EXPECT().MarkProcessed(gomock.Any(), uint64(100)).Return(nil)
				m.metrics.EXPECT().ObserveBlock(statusDelivered, gomock.Any())
			},
		},
		{
			name: "releases the lock when every transport fails",
			prepare: func(t *testing.T, m heralderMocks) {
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(testBlock(), nil)
				summary := testSummary()
				summary.TokenIDs = mapset.NewSet[string]()
				m.pipeline.EXPECT().Summarize(gomock.Any(), *testBlock()).Return(summary, nil)
				m.prices.EXPECT().Prices(gomock.Any()).Return(prices, nil)
				m.metrics.EXPECT().ObserveSnapshot(snapshotPrices, nil)
				m.pipeline.EXPECT().Compose(gomock.Any(), model.TokenMetas{}, prices).Return(messages)
				m.metrics.EXPECT().ObserveMessages(2)
				m.telegram.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(sendErr)
				m.nats.EXPECT().Deliver(gomock.Any(), uint64(100), messages).Return(sendErr)
				m.metrics.EXPECT().ObserveDelivery(gomock.Any(), sendErr).Times(2)
				m.locker.EXPECT().Release(gomock.Any(), uint64(100)).Return(nil)
				m.metrics.EXPECT().ObserveBlock(statusFailed, gomock.Any())
			},
			wantErr: ErrAllTransportsFailed,
		},
		{
			name: "releases the lock when the block cannot be fetched",
			prepare: func(t *testing.T, m heralderMocks) {
				m.locker.EXPECT().TryAcquire(gomock.Any(), uint64(100)).Return(true, nil)
				m.source.EXPECT().FetchBlock(gomock.Any(), uint64(100)).Return(nil, sendErr)
				m.locker.EXPECT().Release(gomock.Any(), uint64(100)).Return(errors.New("redis gone"))
				m.metrics.EXPECT().ObserveBlock(statusFailed, gomock.Any())
			},
			wantErr: sendErr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			m := newHeralderMocks(ctrl)
			tt.prepare(t, m)

			err := m.heralder().Herald(context.Background(), 100)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
