// Package price fetches fiat prices for the herald's price section.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/httpclient"
)

// DefaultCoinIDs maps tickers to CoinGecko coin ids.
var DefaultCoinIDs = map[string]string{
	"XEC": "ecash",
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

// ErrNoPrices is returned when the response carries none of the requested prices.
var ErrNoPrices = errors.New("no prices in response")

const apiKeyHeader = "x-cg-demo-api-key"

// CoinGecko reads prices from the simple/price endpoint.
type CoinGecko struct {
	baseURL string
	apiKey  string
	fiat    string
	coinIDs map[string]string
	http    *retryablehttp.Client
	logger  *zap.Logger
}

// NewCoinGecko returns a client quoting tickers in fiat. Tickers without a known coin id
// are skipped.
func NewCoinGecko(
	baseURL, apiKey, fiat string,
	tickers []string,
	httpClient *retryablehttp.Client,
	logger *zap.Logger,
) *CoinGecko {
	ids := make(map[string]string, len(tickers))
	for _, ticker := range tickers {
		if id, ok := DefaultCoinIDs[strings.ToUpper(ticker)]; ok {
			ids[strings.ToUpper(ticker)] = id
		}
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fiat:    strings.ToLower(fiat),
		coinIDs: ids,
		http:    httpClient,
		logger:  logger.Named("price"),
	}
}

// Prices returns a snapshot of every configured ticker.
func (c *CoinGecko) Prices(ctx context.Context) (*model.PriceSnapshot, error) {
	ids := make([]string, 0, len(c.coinIDs))
	for _, id := range c.coinIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", c.fiat)
	q.Set("precision", "full")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	var body map[string]map[string]json.Number
	if err = httpclient.DoJSON(c.http, req, &body); err != nil {
		return nil, fmt.Errorf("simple price: %w", err)
	}

	snapshot := &model.PriceSnapshot{Fiat: c.fiat, Prices: make(map[string]decimal.Decimal, len(c.coinIDs))}
	for ticker, id := range c.coinIDs {
		raw, ok := body[id][c.fiat]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw.String())
		if err != nil {
			c.logger.Warn("unparsable price", zap.String("ticker", ticker), zap.String("value", raw.String()))
			continue
		}
		snapshot.Prices[ticker] = price
	}
	if len(snapshot.Prices) == 0 {
		return nil, ErrNoPrices
	}
	return snapshot, nil
}
