package aggregator

import (
	"bytes"
	"encoding/hex"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/format"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// UnknownMiner names a block whose coinbase could not be attributed.
const UnknownMiner = "unknown"

// Miner identifies a mining pool by its coinbase tag or payout script.
type Miner struct {
	Name         string
	CoinbaseTag  string
	PayoutScript model.Script
}

// identifyMiner names the miner from the coinbase tx: a known coinbase tag first, then a
// known payout script, then the payout address itself.
func (a *Aggregator) identifyMiner(txs []model.ParsedTx) string {
	var coinbase *model.ParsedTx
	for i := range txs {
		if txs[i].IsCoinbase {
			coinbase = &txs[i]
			break
		}
	}
	if coinbase == nil {
		return UnknownMiner
	}

	if scriptSig, err := hex.DecodeString(coinbase.CoinbaseScript); err == nil {
		for _, m := range a.miners {
			if m.CoinbaseTag != "" && bytes.Contains(scriptSig, []byte(m.CoinbaseTag)) {
				return m.Name
			}
		}
	}

	payout, ok := firstPayout(*coinbase)
	if !ok {
		return UnknownMiner
	}
	for _, m := range a.miners {
		if m.PayoutScript != "" && m.PayoutScript == payout {
			return m.Name
		}
	}
	if addr, err := ecash.ScriptAddress(payout); err == nil {
		return format.Identity(addr)
	}
	return UnknownMiner
}

func firstPayout(coinbase model.ParsedTx) (model.Script, bool) {
	for _, alloc := range coinbase.XecReceivingOutputs {
		if !alloc.Script.IsOpReturn() {
			return alloc.Script, true
		}
	}
	return "", false
}
