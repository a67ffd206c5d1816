package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/httpclient"
)

func TestCoinGecko_Prices(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		want    map[string]string
		wantErr bool
	}{
		{
			name: "exact decimals",
			body: `{"ecash":{"usd":0.00003012},"bitcoin":{"usd":64123.5}}`,
			want: map[string]string{"XEC": "0.00003012", "BTC": "64123.5"},
		},
		{
			name: "missing coin is skipped",
			body: `{"ecash":{"usd":0.00003}}`,
			want: map[string]string{"XEC": "0.00003"},
		},
		{name: "empty response", body: `{}`, wantErr: true},
		{name: "server error", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/simple/price", r.URL.Path)
				assert.Equal(t, "bitcoin,ecash", r.URL.Query().Get("ids"))
				assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
				assert.Equal(t, "demo-key", r.Header.Get(apiKeyHeader))
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c := NewCoinGecko(srv.URL, "demo-key", "USD", []string{"XEC", "btc", "DOGE"},
				httpclient.New(httpclient.WithRetryMax(0)), zap.NewNop())
			got, err := c.Prices(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "usd", got.Fiat)
			require.Len(t, got.Prices, len(tt.want))
			for ticker, want := range tt.want {
				assert.True(t, decimal.RequireFromString(want).Equal(got.Prices[ticker]), ticker)
			}
		})
	}
}
