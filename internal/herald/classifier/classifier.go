// Package classifier derives the semantic summary of each transaction in a block.
package classifier

import (
	"context"
	"fmt"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/workerpool"
)

// Classifier turns indexer transactions into ParsedTx records. It holds no mutable state.
type Classifier struct {
	registry *ecash.Registry
}

// New creates a Classifier decoding OP_RETURN outputs with registry.
func New(registry *ecash.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// ClassifyBlock classifies txs with up to workers goroutines, keeping block order.
func (c *Classifier) ClassifyBlock(ctx context.Context, txs []model.RawTx, workers int) ([]model.ParsedTx, error) {
	return workerpool.Map(ctx, workers, txs, func(_ context.Context, tx model.RawTx) (model.ParsedTx, error) {
		return c.Classify(tx)
	})
}

// Classify derives the ParsedTx of tx. Data breaking the indexer contract yields an
// error wrapping model.ErrIndexerContract.
func (c *Classifier) Classify(tx model.RawTx) (model.ParsedTx, error) {
	parsed := model.ParsedTx{
		TxID:            tx.TxID,
		IsCoinbase:      tx.IsCoinbase,
		Size:            tx.Size,
		HasTokenEntries: len(tx.TokenEntries) > 0,
	}

	inputSats, err := collectInputs(tx, &parsed)
	if err != nil {
		return model.ParsedTx{}, err
	}
	outputSats := collectOutputs(tx, &parsed)

	if !tx.IsCoinbase {
		parsed.Fee = inputSats - outputSats
		if parsed.Fee < 0 {
			return model.ParsedTx{}, contractError(tx.TxID, "negative fee %d", parsed.Fee)
		}
	}

	for _, alloc := range parsed.XecReceivingOutputs {
		if !parsed.IsSender(alloc.Script) {
			parsed.TotalSatsSent += alloc.Amount
		}
	}

	if info, ok := c.registry.Decode(&tx); ok {
		parsed.OpReturnInfo = &info
	}

	if err := classifyTokens(tx, &parsed); err != nil {
		return model.ParsedTx{}, err
	}
	return parsed, nil
}

func collectInputs(tx model.RawTx, parsed *model.ParsedTx) (int64, error) {
	if tx.IsCoinbase {
		if len(tx.Inputs) > 0 {
			parsed.CoinbaseScript = tx.Inputs[0].InputScript
		}
		return 0, nil
	}

	var total int64
	for i, in := range tx.Inputs {
		if in.Sats == nil {
			return 0, contractError(tx.TxID, "input %d spending %s:%d has no resolved value", i, in.PrevOut.TxID, in.PrevOut.OutIdx)
		}
		total += *in.Sats
		if !parsed.IsSender(in.OutputScript) {
			parsed.XecSendingOutputScripts = append(parsed.XecSendingOutputScripts, in.OutputScript)
		}
	}
	return total, nil
}

func collectOutputs(tx model.RawTx, parsed *model.ParsedTx) int64 {
	var total int64
	for _, out := range tx.Outputs {
		total += out.Sats
		if out.OutputScript.IsOpReturn() {
			parsed.XecReceivingOutputs.Add(out.OutputScript, 0)
			continue
		}
		parsed.XecReceivingOutputs.Add(out.OutputScript, out.Sats)
	}
	return total
}

func contractError(txid, format string, args ...any) error {
	return fmt.Errorf("tx %s: %s: %w", txid, fmt.Sprintf(format, args...), model.ErrIndexerContract)
}
