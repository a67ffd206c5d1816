package ecash

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// opReserved marks an eMPP payload: OP_RETURN OP_RESERVED <section>...
const opReserved = txscript.OP_RESERVED

var errNotPushOnly = errors.New("op_return payload contains a non-push opcode")

// Payload is the pushdata content of an OP_RETURN script.
type Payload struct {
	// Items are the pushed byte strings. For eMPP payloads they are the sections.
	Items [][]byte
	EMPP  bool
}

// Lead returns the item a protocol prefix is matched against.
func (p Payload) Lead() []byte {
	if len(p.Items) == 0 {
		return nil
	}
	return p.Items[0]
}

// IsOpReturn reports whether script is an OP_RETURN data carrier.
func IsOpReturn(script []byte) bool {
	return len(script) > 0 && script[0] == txscript.OP_RETURN && txscript.IsUnspendable(script)
}

// ParsePayload splits an OP_RETURN script into its pushdata items. A length prefix that
// overruns the script is reported as an error.
func ParsePayload(script []byte) (Payload, error) {
	if !IsOpReturn(script) {
		return Payload{}, errors.New("script is not an op_return")
	}

	var payload Payload
	tokenizer := txscript.MakeScriptTokenizer(0, script[1:])
	for first := true; tokenizer.Next(); first = false {
		op := tokenizer.Opcode()
		switch {
		case first && op == opReserved:
			payload.EMPP = true
		case op == txscript.OP_0:
			payload.Items = append(payload.Items, []byte{})
		case op <= txscript.OP_PUSHDATA4:
			payload.Items = append(payload.Items, tokenizer.Data())
		case op == txscript.OP_1NEGATE:
			payload.Items = append(payload.Items, []byte{0x81})
		case op >= txscript.OP_1 && op <= txscript.OP_16:
			payload.Items = append(payload.Items, []byte{op - (txscript.OP_1 - 1)})
		default:
			return Payload{}, fmt.Errorf("%w: 0x%02x", errNotPushOnly, op)
		}
	}
	if err := tokenizer.Err(); err != nil {
		return Payload{}, fmt.Errorf("tokenize op_return: %w", err)
	}
	return payload, nil
}
