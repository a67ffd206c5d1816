package model

import "github.com/shopspring/decimal"

// TokenMeta is the token metadata used to render token amounts.
type TokenMeta struct {
	TokenID  string `json:"tokenId"`
	Ticker   string `json:"tokenTicker"`
	Name     string `json:"tokenName"`
	Decimals uint8  `json:"decimals"`
	URL      string `json:"url,omitempty"`
	Hash     string `json:"hash,omitempty"`
}

// TokenMetas is a read-only token metadata snapshot keyed by token id.
type TokenMetas map[string]TokenMeta

// Lookup returns metadata for tokenID. A nil snapshot has no entries.
func (m TokenMetas) Lookup(tokenID string) (TokenMeta, bool) {
	meta, ok := m[tokenID]
	return meta, ok
}

// PriceSnapshot holds fiat prices keyed by ticker. A nil snapshot means no price feed.
type PriceSnapshot struct {
	Fiat   string                     `json:"fiat"`
	Prices map[string]decimal.Decimal `json:"prices"`
}

// Price returns the fiat price of ticker.
func (p *PriceSnapshot) Price(ticker string) (decimal.Decimal, bool) {
	if p == nil {
		return decimal.Zero, false
	}
	price, ok := p.Prices[ticker]
	return price, ok
}

// Available reports whether any price is known.
func (p *PriceSnapshot) Available() bool {
	return p != nil && len(p.Prices) > 0
}
