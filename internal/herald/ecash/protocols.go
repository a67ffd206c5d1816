package ecash

import (
	"encoding/hex"
	"fmt"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/format"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// Lokad prefixes of the registered protocols.
var (
	prefixSLP              = []byte("SLP\x00")
	prefixALP              = []byte("SLP2")
	prefixCashFusion       = []byte("FUZ\x00")
	prefixSWaP             = []byte("SWP\x00")
	prefixAlias            = []byte(".xec")
	prefixCashtabMsg       = []byte("\x00tab")
	prefixCashtabEncrypted = []byte("etab")
	prefixAirdrop          = []byte("drop")
	prefixMemo             = []byte{0x6d}
	prefixPayButton        = []byte("PAY\x00")
	prefixECashChat        = []byte("chat")
	prefixEVMBridge        = []byte("EVM\x00")
)

// DefaultMatchers returns the built-in protocol matchers in match order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{Name: "SLP", Prefix: prefixSLP, Decode: decodeSLP},
		{Name: "ALP", Prefix: prefixALP, Decode: decodeALP},
		{Name: "CashFusion", Prefix: prefixCashFusion, Decode: decodeCashFusion},
		{Name: "SWaP", Prefix: prefixSWaP, Decode: decodeSWaP},
		{Name: "Alias", Prefix: prefixAlias, Decode: decodeAlias},
		{Name: "Cashtab Msg", Prefix: prefixCashtabMsg, Decode: decodeCashtabMsg},
		{Name: "Cashtab Encrypted", Prefix: prefixCashtabEncrypted, Decode: decodeCashtabEncrypted},
		{Name: "Airdrop", Prefix: prefixAirdrop, Decode: decodeAirdrop},
		{Name: "memo", Prefix: prefixMemo, Decode: decodeMemo},
		{Name: "PayButton", Prefix: prefixPayButton, Decode: decodePayButton},
		{Name: "eCashChat", Prefix: prefixECashChat, Decode: decodeECashChat},
		{Name: "EVM Bridge", Prefix: prefixEVMBridge, Decode: decodeEVMBridge},
	}
}

// decodeCashFusion summarizes the fusion from the carrying tx. OP_RETURN outputs are not
// counted as fused outputs.
func decodeCashFusion(_ Payload, tx *model.RawTx) (model.OpReturnInfo, error) {
	var outputs int
	var total int64
	for _, out := range tx.Outputs {
		total += out.Sats
		if !out.OutputScript.IsOpReturn() {
			outputs++
		}
	}
	return model.OpReturnInfo{
		Protocol: model.ProtocolCashFusion,
		Message:  fmt.Sprintf("Fused %d inputs into %d outputs (%s)", len(tx.Inputs), outputs, format.XECWithUnit(total)),
	}, nil
}

var swapSignalTypes = map[byte]string{
	0x01: "SLP Atomic Swap",
	0x02: "Multi-Party Escrow",
	0x03: "Threshold Crowdfunding",
}

func decodeSWaP(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 2 || len(items[1]) != 1 {
		return model.OpReturnInfo{}, errMalformed
	}
	info := model.OpReturnInfo{Protocol: model.ProtocolSWaP}
	switch items[1][0] {
	case 0x01:
		if len(items) < 3 || len(items[2]) != 1 {
			return model.OpReturnInfo{}, errMalformed
		}
		kind, ok := swapSignalTypes[items[2][0]]
		if !ok {
			return model.OpReturnInfo{}, errMalformed
		}
		info.Message = "Signal|" + kind
		if items[2][0] == 0x01 && len(items) >= 5 && len(items[3]) == tokenIDSize {
			info.TokenID = hex.EncodeToString(items[3])
			side, err := text(items[4])
			if err != nil {
				return model.OpReturnInfo{}, err
			}
			info.Message += "|" + format.Identity(info.TokenID) + "|" + side
		}
	case 0x02:
		info.Message = "Payment"
		if len(items) >= 3 && len(items[2]) == 1 {
			if kind, ok := swapSignalTypes[items[2][0]]; ok {
				info.Message += "|" + kind
			}
		}
	default:
		return model.OpReturnInfo{}, errMalformed
	}
	return info, nil
}

const aliasAddressPayloadSize = 21

func decodeAlias(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 4 || len(items[3]) != aliasAddressPayloadSize {
		return model.OpReturnInfo{}, errMalformed
	}
	alias, err := text(items[2])
	if err != nil || alias == "" {
		return model.OpReturnInfo{}, errMalformed
	}
	addr, err := EncodeCashAddr(CashAddrPrefix, AddressType(items[3][0]), items[3][1:])
	if err != nil {
		return model.OpReturnInfo{}, err
	}
	return model.OpReturnInfo{
		Protocol: model.ProtocolAlias,
		Message:  fmt.Sprintf("%q registered to %s", alias, format.Identity(addr)),
	}, nil
}

func decodeCashtabMsg(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	if len(payload.Items) < 2 {
		return model.OpReturnInfo{}, errMalformed
	}
	msg, err := text(payload.Items[1])
	if err != nil {
		return model.OpReturnInfo{}, err
	}
	return model.OpReturnInfo{Protocol: model.ProtocolCashtabMsg, Message: msg}, nil
}

func decodeCashtabEncrypted(_ Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	return model.OpReturnInfo{Protocol: model.ProtocolCashtabEncrypted}, nil
}

func decodeAirdrop(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 2 || len(items[1]) != tokenIDSize {
		return model.OpReturnInfo{}, errMalformed
	}
	info := model.OpReturnInfo{
		Protocol: model.ProtocolAirdrop,
		TokenID:  hex.EncodeToString(items[1]),
	}
	if len(items) >= 4 && string(items[2]) == string(prefixCashtabMsg) {
		msg, err := text(items[3])
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		info.Message = msg
	}
	return info, nil
}

var memoActions = map[byte]string{
	0x01: "Set name",
	0x02: "Post memo",
	0x03: "Reply to memo",
	0x04: "Like / tip memo",
	0x05: "Set profile text",
	0x06: "Follow user",
	0x07: "Unfollow user",
	0x0a: "Set profile picture",
	0x0c: "Post topic message",
	0x0d: "Topic follow",
	0x0e: "Topic unfollow",
	0x10: "Create poll",
	0x13: "Add poll option",
	0x14: "Poll vote",
	0x16: "Mute user",
	0x17: "Unmute user",
	0x20: "Link request",
	0x21: "Link accept",
	0x22: "Link revoke",
	0x24: "Send money",
	0x26: "Set address alias",
	0x30: "Sell tokens",
	0x31: "Token buy offer",
	0x32: "Attach token sale signature",
	0x35: "Pin token post",
}

// decodeMemo labels the action byte that follows the memo prefix. The trailing text
// push, when printable, is appended.
func decodeMemo(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	lead := payload.Lead()
	if len(lead) != 2 {
		return model.OpReturnInfo{}, errMalformed
	}
	label, ok := memoActions[lead[1]]
	if !ok {
		return model.OpReturnInfo{}, errMalformed
	}
	msg := label
	if n := len(payload.Items); n > 1 {
		if s, ok := printable(payload.Items[n-1]); ok {
			msg += ": " + s
		}
	}
	return model.OpReturnInfo{Protocol: model.ProtocolMemo, Message: msg}, nil
}

func decodePayButton(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 3 || len(items[1]) > 1 {
		return model.OpReturnInfo{}, errMalformed
	}
	data, err := text(items[2])
	if err != nil {
		return model.OpReturnInfo{}, err
	}
	if data == "" {
		data = "(no data)"
	}
	return model.OpReturnInfo{Protocol: model.ProtocolPayButton, Message: data}, nil
}

func decodeECashChat(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	if len(payload.Items) < 2 {
		return model.OpReturnInfo{}, errMalformed
	}
	msg, err := text(payload.Items[1])
	if err != nil {
		return model.OpReturnInfo{}, err
	}
	return model.OpReturnInfo{Protocol: model.ProtocolECashChat, Message: msg}, nil
}

const evmAddressSize = 20

func decodeEVMBridge(payload Payload, _ *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 3 || len(items[2]) != evmAddressSize {
		return model.OpReturnInfo{}, errMalformed
	}
	chain, err := text(items[1])
	if err != nil || chain == "" {
		return model.OpReturnInfo{}, errMalformed
	}
	return model.OpReturnInfo{
		Protocol: model.ProtocolEVMBridge,
		Message:  fmt.Sprintf("Bridge to %s %s", chain, format.Identity("0x"+hex.EncodeToString(items[2]))),
	}, nil
}
