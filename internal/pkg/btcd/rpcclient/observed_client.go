// Package rpcclient instruments the btcd node client used to read eCash blocks.
package rpcclient

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

type (
	// RPCMetrics records the outcome and latency of a node call.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// NodeClient is the part of *rpcclient.Client the herald calls.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

var _ NodeClient = (*rpcclient.Client)(nil)

// ObservedClient reports every node call to RPCMetrics.
type ObservedClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
}

// NewObservedClient wraps client.
func NewObservedClient(client NodeClient, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	defer r.observe("get_block_count", time.Now(), &err)
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	defer r.observe("get_block_hash", time.Now(), &err)
	return r.client.GetBlockHash(blockHeight)
}

func (r *ObservedClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	defer r.observe("get_block_verbose_tx", time.Now(), &err)
	return r.client.GetBlockVerboseTx(blockHash)
}

// GetRawTransactionVerbose is used to resolve previous outputs.
func (r *ObservedClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	defer r.observe("get_raw_transaction_verbose", time.Now(), &err)
	return r.client.GetRawTransactionVerbose(txHash)
}

func (r *ObservedClient) observe(operation string, started time.Time, err *error) {
	r.rpcMetrics.Observe(operation, *err, started)
}
