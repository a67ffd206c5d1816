package model

// TokenStatus tags how a transaction relates to token protocols.
type TokenStatus string

var (
	// TokenStatusNonToken marks a tx without token data.
	TokenStatusNonToken TokenStatus = "TOKEN_STATUS_NON_TOKEN"
	// TokenStatusNormal marks a tx whose token data is consistent.
	TokenStatusNormal TokenStatus = "TOKEN_STATUS_NORMAL"
	// TokenStatusNotNormal marks a tx with burns or failed parsings.
	TokenStatusNotNormal TokenStatus = "TOKEN_STATUS_NOT_NORMAL"
)

// TokenTxType is the action a token entry performs in a tx.
type TokenTxType string

var (
	TokenTxGenesis TokenTxType = "GENESIS"
	TokenTxMint    TokenTxType = "MINT"
	TokenTxSend    TokenTxType = "SEND"
	TokenTxBurn    TokenTxType = "BURN"
	TokenTxUnknown TokenTxType = "UNKNOWN"
	TokenTxNone    TokenTxType = "NONE"
)

// TokenProtocol names a token protocol family.
type TokenProtocol string

var (
	TokenProtocolSLP TokenProtocol = "SLP"
	TokenProtocolALP TokenProtocol = "ALP"
)

// TokenType is the protocol+type+version triple of a token.
type TokenType struct {
	Protocol TokenProtocol `json:"protocol"`
	Type     string        `json:"type"`
	Number   uint32        `json:"number"`
}

// OutPoint references an output of a transaction.
type OutPoint struct {
	TxID   string `json:"txid"`
	OutIdx uint32 `json:"outIdx"`
}

// Token is the token amount carried by an input or output.
type Token struct {
	TokenID     string    `json:"tokenId"`
	TokenType   TokenType `json:"tokenType"`
	EntryIdx    int       `json:"entryIdx"`
	Atoms       uint64    `json:"atoms"`
	IsMintBaton bool      `json:"isMintBaton"`
}

// Input spends a previous output. OutputScript, Sats and Token describe the spent output
// as resolved by the indexer; Sats is nil when the indexer could not resolve it.
type Input struct {
	PrevOut      OutPoint `json:"prevOut"`
	InputScript  string   `json:"inputScript"`
	OutputScript Script   `json:"outputScript,omitempty"`
	Sats         *int64   `json:"sats,omitempty"`
	SequenceNo   uint32   `json:"sequenceNo"`
	Token        *Token   `json:"token,omitempty"`
}

// Output is a transaction output.
type Output struct {
	Sats         int64     `json:"sats"`
	OutputScript Script    `json:"outputScript"`
	Token        *Token    `json:"token,omitempty"`
	SpentBy      *OutPoint `json:"spentBy,omitempty"`
}

// TokenEntry describes how one token color participates in a tx.
type TokenEntry struct {
	TokenID              string      `json:"tokenId"`
	TokenType            TokenType   `json:"tokenType"`
	TxType               TokenTxType `json:"txType"`
	IsInvalid            bool        `json:"isInvalid"`
	BurnSummary          string      `json:"burnSummary"`
	IntentionalBurnAtoms uint64      `json:"intentionalBurnAtoms"`
	BurnsMintBatons      bool        `json:"burnsMintBatons"`
	ActualBurnAtoms      uint64      `json:"actualBurnAtoms"`
}

// IsSendClass reports whether the entry moves existing or newly minted tokens.
func (e TokenEntry) IsSendClass() bool {
	return e.TxType == TokenTxSend || e.TxType == TokenTxMint
}

// TokenFailedParsing records a token pushdata the indexer could not parse.
type TokenFailedParsing struct {
	PushdataIdx int    `json:"pushdataIdx"`
	Bytes       string `json:"bytes"`
	Error       string `json:"error"`
}

// RawTx is a transaction as supplied by the indexer.
type RawTx struct {
	TxID                string               `json:"txid"`
	Version             int32                `json:"version"`
	Inputs              []Input              `json:"inputs"`
	Outputs             []Output             `json:"outputs"`
	LockTime            uint32               `json:"lockTime"`
	TimeFirstSeen       int64                `json:"timeFirstSeen"`
	Size                uint32               `json:"size"`
	IsCoinbase          bool                 `json:"isCoinbase"`
	TokenEntries        []TokenEntry         `json:"tokenEntries"`
	TokenFailedParsings []TokenFailedParsing `json:"tokenFailedParsings"`
	TokenStatus         TokenStatus          `json:"tokenStatus"`
}
