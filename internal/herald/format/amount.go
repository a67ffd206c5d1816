// Package format renders amounts and identities for herald messages.
package format

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

const (
	// SatsPerXEC is the base unit scale of eCash.
	SatsPerXEC = 100
	// xecDecimals is the display precision of XEC amounts.
	xecDecimals = 2

	unknownTokenMarker = "⚠️"
)

// SatsToXEC converts satoshis to an exact XEC decimal.
func SatsToXEC(sats int64) decimal.Decimal {
	return decimal.New(sats, -xecDecimals)
}

// XEC renders satoshis as XEC with grouped thousands. Whole amounts drop the fraction.
func XEC(sats int64) string {
	if sats%SatsPerXEC == 0 {
		return groupThousands(strconv.FormatInt(sats/SatsPerXEC, 10))
	}
	return groupThousands(SatsToXEC(sats).StringFixed(xecDecimals))
}

// XECWithUnit renders satoshis with the XEC suffix.
func XECWithUnit(sats int64) string {
	return XEC(sats) + " XEC"
}

// Atoms renders a token amount scaled by the token's decimals. Without metadata the raw
// atom count is rendered with a warning marker.
func Atoms(atoms uint64, meta model.TokenMeta, known bool) string {
	if !known {
		return strconv.FormatUint(atoms, 10) + " " + unknownTokenMarker
	}
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(atoms), -int32(meta.Decimals))
	if meta.Decimals == 0 {
		return groupThousands(amount.String())
	}
	return groupThousands(trimFraction(amount.StringFixed(int32(meta.Decimals))))
}

// TokenAmount renders atoms followed by the token ticker when one is known.
func TokenAmount(atoms uint64, meta model.TokenMeta, known bool) string {
	rendered := Atoms(atoms, meta, known)
	if !known || meta.Ticker == "" {
		return rendered
	}
	return rendered + " " + meta.Ticker
}

// groupThousands inserts comma separators into the integer part of a decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		head := len(intPart) % 3
		if head > 0 {
			b.WriteString(intPart[:head])
		}
		for i := head; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
