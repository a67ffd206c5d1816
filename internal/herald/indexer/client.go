// Package indexer reads blocks and token metadata from an eCash indexer's JSON API.
package indexer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/httpclient"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/workerpool"
)

const (
	defaultPageSize = 200
	defaultWorkers  = 8
)

type blockchainInfo struct {
	TipHash   string `json:"tipHash"`
	TipHeight int64  `json:"tipHeight"`
}

type blockResponse struct {
	BlockInfo model.BlockHeader `json:"blockInfo"`
}

type txPage struct {
	Txs      []model.RawTx `json:"txs"`
	NumPages int           `json:"numPages"`
}

type tokenResponse struct {
	TokenID     string          `json:"tokenId"`
	GenesisInfo model.TokenMeta `json:"genesisInfo"`
}

// Client fetches herald inputs over HTTP.
type Client struct {
	baseURL  string
	http     *retryablehttp.Client
	pageSize int
	workers  int
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets how many txs are requested per block page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithWorkers bounds concurrent token metadata requests.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewClient returns a Client for the indexer at baseURL.
func NewClient(baseURL string, httpClient *retryablehttp.Client, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		pageSize: defaultPageSize,
		workers:  defaultWorkers,
		logger:   logger.Named("indexer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestHeight returns the indexer's tip height.
func (c *Client) LatestHeight(ctx context.Context) (uint64, error) {
	var info blockchainInfo
	if err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/blockchain-info", &info); err != nil {
		return 0, fmt.Errorf("blockchain info: %w", err)
	}
	if info.TipHeight < 0 {
		return 0, fmt.Errorf("negative tip height %d", info.TipHeight)
	}
	return uint64(info.TipHeight), nil
}

// FetchBlock returns the header and every tx of the block at height, in block order.
func (c *Client) FetchBlock(ctx context.Context, height uint64) (*model.Block, error) {
	h := strconv.FormatUint(height, 10)

	var header blockResponse
	if err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/block/"+h, &header); err != nil {
		return nil, fmt.Errorf("block %d: %w", height, err)
	}

	block := &model.Block{Header: header.BlockInfo}
	for page := 0; ; page++ {
		var txs txPage
		u := fmt.Sprintf("%s/block-txs/%s?page=%d&page_size=%d", c.baseURL, h, page, c.pageSize)
		if err := httpclient.GetJSON(ctx, c.http, u, &txs); err != nil {
			return nil, fmt.Errorf("block %d txs page %d: %w", height, page, err)
		}
		block.Txs = append(block.Txs, txs.Txs...)
		if page+1 >= txs.NumPages {
			break
		}
	}

	if header.BlockInfo.NumTxs != 0 && uint64(len(block.Txs)) != header.BlockInfo.NumTxs {
		return nil, fmt.Errorf("block %d: got %d txs, header has %d: %w",
			height, len(block.Txs), header.BlockInfo.NumTxs, model.ErrIndexerContract)
	}
	c.logger.Debug("block fetched", zap.Uint64("height", height), zap.Int("txs", len(block.Txs)))
	return block, nil
}

// TokenMetas fetches genesis info for tokenIDs. Tokens the indexer does not know are
// left out of the snapshot.
func (c *Client) TokenMetas(ctx context.Context, tokenIDs []string) (model.TokenMetas, error) {
	var (
		mu    sync.Mutex
		metas = make(model.TokenMetas, len(tokenIDs))
	)
	err := workerpool.Process(ctx, c.workers, tokenIDs, func(ctx context.Context, tokenID string) error {
		var res tokenResponse
		err := httpclient.GetJSON(ctx, c.http, c.baseURL+"/token/"+url.PathEscape(tokenID), &res)
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("token %s: %w", tokenID, err)
		}
		meta := res.GenesisInfo
		meta.TokenID = tokenID

		mu.Lock()
		metas[tokenID] = meta
		mu.Unlock()
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return metas, nil
}
