package model

// GenesisInfo marks a tx that created a token.
type GenesisInfo struct {
	TokenID string
}

// TokenSendInfo describes the single send-class token action of a tx.
type TokenSendInfo struct {
	TokenID               string
	Protocol              TokenProtocol
	TxType                TokenTxType
	TokenReceivingOutputs Allocations[uint64]
	TokenChangeOutputs    Allocations[uint64]
	TokenSendingScripts   []Script
}

// TokenBurnInfo records atoms destroyed by a tx.
type TokenBurnInfo struct {
	TokenID         string
	ActualBurnAtoms uint64
}

// ParsedTx is the semantic summary of one transaction.
type ParsedTx struct {
	TxID       string
	IsCoinbase bool
	Size       uint32

	// Fee is zero for coinbase txs, which never count towards fee totals.
	Fee int64

	XecSendingOutputScripts []Script
	XecReceivingOutputs     Allocations[int64]
	TotalSatsSent           int64

	// CoinbaseScript is the hex input script of a coinbase tx.
	CoinbaseScript string

	HasTokenEntries bool
	GenesisInfo     *GenesisInfo
	OpReturnInfo    *OpReturnInfo
	TokenSendInfo   *TokenSendInfo
	TokenBurnInfo   *TokenBurnInfo
}

// IsSender reports whether script funded the tx.
func (p ParsedTx) IsSender(script Script) bool {
	for _, s := range p.XecSendingOutputScripts {
		if s == script {
			return true
		}
	}
	return false
}

// HasTokenActivity reports whether the tx did anything token related.
func (p ParsedTx) HasTokenActivity() bool {
	return p.HasTokenEntries || p.GenesisInfo != nil || p.TokenSendInfo != nil || p.TokenBurnInfo != nil
}
