package ecash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// ErrRegistryCollision is returned when two matchers register the same prefix.
var ErrRegistryCollision = errors.New("op_return prefix collision")

// DecodeFunc renders the payload of one protocol. tx is the carrying transaction.
type DecodeFunc func(payload Payload, tx *model.RawTx) (model.OpReturnInfo, error)

// Matcher binds a lokad prefix to the decoder of its protocol.
type Matcher struct {
	Name   string
	Prefix []byte
	Decode DecodeFunc
}

// Registry decodes OP_RETURN outputs by prefix. The first registered matcher whose
// prefix begins the payload wins.
type Registry struct {
	matchers []Matcher
}

// NewRegistry validates matchers and returns a registry that tries them in order.
func NewRegistry(matchers ...Matcher) (*Registry, error) {
	seen := make(map[string]string, len(matchers))
	for _, m := range matchers {
		if len(m.Prefix) == 0 {
			return nil, fmt.Errorf("matcher %s: empty prefix", m.Name)
		}
		if m.Decode == nil {
			return nil, fmt.Errorf("matcher %s: nil decoder", m.Name)
		}
		key := hex.EncodeToString(m.Prefix)
		if other, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s share %s", ErrRegistryCollision, other, m.Name, key)
		}
		seen[key] = m.Name
	}
	return &Registry{matchers: append([]Matcher(nil), matchers...)}, nil
}

// NewDefaultRegistry returns the registry of every protocol the herald understands.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultMatchers()...)
}

// Prefixes lists the registered prefixes in match order.
func (r *Registry) Prefixes() []string {
	out := make([]string, 0, len(r.matchers))
	for _, m := range r.matchers {
		out = append(out, hex.EncodeToString(m.Prefix))
	}
	return out
}

// Decode decodes the first output of tx. It returns false when that output is not an
// OP_RETURN. Payloads that no matcher accepts decode as unknown.
func (r *Registry) Decode(tx *model.RawTx) (model.OpReturnInfo, bool) {
	if len(tx.Outputs) == 0 {
		return model.OpReturnInfo{}, false
	}
	script, err := tx.Outputs[0].OutputScript.Bytes()
	if err != nil || !IsOpReturn(script) {
		return model.OpReturnInfo{}, false
	}
	return r.DecodeScript(script, tx), true
}

// DecodeScript decodes an OP_RETURN script. It never fails: malformed or unmatched
// payloads yield the unknown protocol.
func (r *Registry) DecodeScript(script []byte, tx *model.RawTx) model.OpReturnInfo {
	payload, err := ParsePayload(script)
	if err != nil {
		return unknownInfo(script[1:], nil)
	}
	lead := payload.Lead()
	for _, m := range r.matchers {
		if !bytes.HasPrefix(lead, m.Prefix) {
			continue
		}
		info, err := m.Decode(payload, tx)
		if err != nil {
			break
		}
		info.Stack = payload.Items
		return info
	}
	return unknownInfo(bytes.Join(payload.Items, nil), payload.Items)
}
