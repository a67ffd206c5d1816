// Package model defines domain models for block heralding.
package model

// Block is a fully decoded block as supplied by the indexer.
type Block struct {
	Header BlockHeader `json:"blockInfo"`
	Txs    []RawTx     `json:"txs"`
}

// BlockHeader carries the header fields the herald renders.
type BlockHeader struct {
	Height    uint64  `json:"height"`
	Hash      string  `json:"hash"`
	Timestamp int64   `json:"timestamp"`
	Miner     string  `json:"miner,omitempty"`
	Staker    *Staker `json:"staker,omitempty"`
	NumTxs    uint64  `json:"numTxs"`
}

// Staker is the staking reward recorded in the coinbase of a block.
type Staker struct {
	Script Script `json:"script"`
	Sats   int64  `json:"sats"`
}
