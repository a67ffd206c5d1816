package ecash

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/safe"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/pkg/workerpool"
)

// NodeSource assembles blocks from a node's RPC interface. Previous outputs are resolved
// with getrawtransaction, so the node must run with txindex. Nodes know nothing about
// tokens: blocks from this source carry no token entries.
type NodeSource struct {
	rpc     RPCClient
	workers int
	logger  *zap.Logger
}

// NewNodeSource creates a NodeSource resolving previous outputs with workers goroutines.
func NewNodeSource(rpc RPCClient, workers int, logger *zap.Logger) *NodeSource {
	if workers <= 0 {
		workers = 1
	}
	return &NodeSource{
		rpc:     rpc,
		workers: workers,
		logger:  logger.Named("node_source"),
	}
}

// LatestHeight returns the node's best height.
func (s *NodeSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the block at height with every previous output resolved.
func (s *NodeSource) FetchBlock(ctx context.Context, height uint64) (*model.Block, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	prevOuts, err := s.resolvePrevOuts(ctx, src.Tx)
	if err != nil {
		return nil, err
	}

	block := &model.Block{
		Header: model.BlockHeader{
			Height:    height,
			Hash:      src.Hash,
			Timestamp: src.Time,
			NumTxs:    uint64(len(src.Tx)),
		},
		Txs: make([]model.RawTx, 0, len(src.Tx)),
	}
	for _, tx := range src.Tx {
		raw, err := convertTx(tx, prevOuts)
		if err != nil {
			return nil, err
		}
		block.Txs = append(block.Txs, raw)
	}
	s.logger.Debug("assembled block",
		zap.Uint64("height", height),
		zap.Int("txs", len(block.Txs)),
		zap.Int("prev_txs", len(prevOuts)),
	)
	return block, nil
}

// resolvePrevOuts fetches every distinct transaction spent by txs.
func (s *NodeSource) resolvePrevOuts(ctx context.Context, txs []btcjson.TxRawResult) (map[string][]btcjson.Vout, error) {
	seen := make(map[string]struct{})
	txids := make([]string, 0)
	for _, tx := range txs {
		for _, vin := range tx.Vin {
			if vin.IsCoinBase() {
				continue
			}
			if _, dup := seen[vin.Txid]; dup {
				continue
			}
			seen[vin.Txid] = struct{}{}
			txids = append(txids, vin.Txid)
		}
	}

	var mu sync.Mutex
	result := make(map[string][]btcjson.Vout, len(txids))
	err := workerpool.Process(ctx, s.workers, txids, func(_ context.Context, txid string) error {
		hash, err := chainhash.NewHashFromStr(txid)
		if err != nil {
			return fmt.Errorf("parse prev txid %s: %w", txid, err)
		}
		prev, err := s.rpc.GetRawTransactionVerbose(hash)
		if err != nil {
			return fmt.Errorf("get prev tx %s: %w", txid, err)
		}
		mu.Lock()
		result[txid] = prev.Vout
		mu.Unlock()
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func convertTx(tx btcjson.TxRawResult, prevOuts map[string][]btcjson.Vout) (model.RawTx, error) {
	size, err := safe.Uint32(tx.Size)
	if err != nil {
		return model.RawTx{}, fmt.Errorf("tx %s size overflow: %w", tx.Txid, err)
	}
	raw := model.RawTx{
		TxID:        tx.Txid,
		Version:     int32(tx.Version),
		LockTime:    tx.LockTime,
		Size:        size,
		Inputs:      make([]model.Input, 0, len(tx.Vin)),
		Outputs:     make([]model.Output, 0, len(tx.Vout)),
		TokenStatus: model.TokenStatusNonToken,
	}

	for _, vin := range tx.Vin {
		if vin.IsCoinBase() {
			raw.IsCoinbase = true
			raw.Inputs = append(raw.Inputs, model.Input{InputScript: vin.Coinbase, SequenceNo: vin.Sequence})
			continue
		}
		input := model.Input{
			PrevOut:    model.OutPoint{TxID: vin.Txid, OutIdx: vin.Vout},
			SequenceNo: vin.Sequence,
		}
		if vin.ScriptSig != nil {
			input.InputScript = vin.ScriptSig.Hex
		}
		// an unresolved prevout stays without Sats and is rejected by the classifier
		if vouts := prevOuts[vin.Txid]; int(vin.Vout) < len(vouts) {
			prev := vouts[vin.Vout]
			sats := XECToSats(prev.Value)
			input.Sats = &sats
			input.OutputScript = model.Script(prev.ScriptPubKey.Hex)
		}
		raw.Inputs = append(raw.Inputs, input)
	}

	for _, vout := range tx.Vout {
		raw.Outputs = append(raw.Outputs, model.Output{
			Sats:         XECToSats(vout.Value),
			OutputScript: model.Script(vout.ScriptPubKey.Hex),
		})
	}
	return raw, nil
}

// XECToSats converts a node's XEC float amount to satoshis.
func XECToSats(xec float64) int64 {
	return decimal.NewFromFloat(xec).Shift(2).Round(0).IntPart()
}
