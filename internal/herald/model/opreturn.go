package model

// Protocol tags the application protocol that produced an OP_RETURN payload.
type Protocol string

var (
	ProtocolCashFusion       Protocol = "CashFusion"
	ProtocolSLPGenesis       Protocol = "SLP-Genesis"
	ProtocolSLPMint          Protocol = "SLP-Mint"
	ProtocolSLPSend          Protocol = "SLP-Send"
	ProtocolALPGenesis       Protocol = "ALP-Genesis"
	ProtocolALPMint          Protocol = "ALP-Mint"
	ProtocolALPSend          Protocol = "ALP-Send"
	ProtocolALPBurn          Protocol = "ALP-Burn"
	ProtocolSWaP             Protocol = "SWaP"
	ProtocolAlias            Protocol = "Alias"
	ProtocolCashtabMsg       Protocol = "Cashtab Msg"
	ProtocolCashtabEncrypted Protocol = "Cashtab Encrypted"
	ProtocolAirdrop          Protocol = "Airdrop"
	ProtocolMemo             Protocol = "memo"
	ProtocolPayButton        Protocol = "PayButton"
	ProtocolECashChat        Protocol = "eCashChat"
	ProtocolEVMBridge        Protocol = "EVM Bridge"
	ProtocolUnknown          Protocol = "unknown"
)

// IsToken reports whether the protocol is a token protocol, rendered in the token sections.
func (p Protocol) IsToken() bool {
	switch p {
	case ProtocolSLPGenesis, ProtocolSLPMint, ProtocolSLPSend,
		ProtocolALPGenesis, ProtocolALPMint, ProtocolALPSend, ProtocolALPBurn:
		return true
	default:
		return false
	}
}

// OpReturnInfo is a decoded OP_RETURN payload.
type OpReturnInfo struct {
	Protocol Protocol
	Message  string
	// Stack holds the raw pushdata items, starting with the protocol identifier.
	Stack   [][]byte
	TokenID string
}
