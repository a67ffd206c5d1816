package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// BaseTicker is the ticker of the chain's native asset in price snapshots.
const BaseTicker = "XEC"

var (
	fiatCent      = decimal.New(1, -2)
	fiatGroupFrom = decimal.NewFromInt(1000)
)

// Fiat converts satoshis to the snapshot's fiat currency. It reports false when the
// snapshot carries no XEC price.
func Fiat(sats int64, prices *model.PriceSnapshot) (string, bool) {
	price, ok := prices.Price(BaseTicker)
	if !ok {
		return "", false
	}
	return FiatValue(SatsToXEC(sats).Mul(price), prices.Fiat), true
}

// FiatValue renders a fiat amount: cents below 1000, whole units above.
func FiatValue(value decimal.Decimal, fiat string) string {
	symbol := fiatSymbol(fiat)
	switch {
	case value.IsZero():
		return symbol + "0"
	case value.LessThan(fiatCent):
		return "<" + symbol + "0.01"
	case value.LessThan(fiatGroupFrom):
		return symbol + value.StringFixed(2)
	default:
		return symbol + groupThousands(value.Round(0).String())
	}
}

// Value renders satoshis in fiat when a price is known and in XEC otherwise.
func Value(sats int64, prices *model.PriceSnapshot) string {
	if rendered, ok := Fiat(sats, prices); ok {
		return rendered
	}
	return XECWithUnit(sats)
}

// Price renders a unit price. Sub-unit prices keep up to eight decimals.
func Price(price decimal.Decimal, fiat string) string {
	symbol := fiatSymbol(fiat)
	if price.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return symbol + groupThousands(price.StringFixed(2))
	}
	return symbol + trimFraction(price.StringFixed(8))
}

func fiatSymbol(fiat string) string {
	switch strings.ToLower(fiat) {
	case "", "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	case "jpy":
		return "¥"
	default:
		return strings.ToUpper(fiat) + " "
	}
}
