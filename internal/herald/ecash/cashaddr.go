package ecash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// CashAddrPrefix is the human readable part of eCash mainnet addresses.
const CashAddrPrefix = "ecash"

// AddressType is the CashAddr version byte for a 160-bit hash.
type AddressType byte

var (
	// AddressP2PKH is a pay-to-pubkey-hash address.
	AddressP2PKH AddressType = 0x00
	// AddressP2SH is a pay-to-script-hash address.
	AddressP2SH AddressType = 0x08
)

const (
	cashAddrCharset  = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	cashAddrChecksum = 8
	hash160Size      = 20
)

// ErrNotAddressable is returned for scripts that have no CashAddr form.
var ErrNotAddressable = errors.New("script has no cashaddr form")

// EncodeCashAddr encodes a 160-bit hash as a CashAddr with the given prefix.
func EncodeCashAddr(prefix string, kind AddressType, hash []byte) (string, error) {
	if kind != AddressP2PKH && kind != AddressP2SH {
		return "", fmt.Errorf("unsupported cashaddr version byte 0x%02x", byte(kind))
	}
	if len(hash) != hash160Size {
		return "", fmt.Errorf("cashaddr hash must be %d bytes, got %d", hash160Size, len(hash))
	}
	data := make([]byte, 0, 1+len(hash))
	data = append(data, byte(kind))
	data = append(data, hash...)
	payload, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("regroup cashaddr payload: %w", err)
	}

	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(payload) + cashAddrChecksum)
	b.WriteString(prefix)
	b.WriteByte(':')
	for _, v := range payload {
		b.WriteByte(cashAddrCharset[v])
	}
	for _, v := range cashAddrChecksumOf(prefix, payload) {
		b.WriteByte(cashAddrCharset[v])
	}
	return b.String(), nil
}

// ScriptAddress returns the eCash address paid by a P2PKH or P2SH output script.
func ScriptAddress(script model.Script) (string, error) {
	raw, err := script.Bytes()
	if err != nil {
		return "", fmt.Errorf("decode script hex: %w", err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(raw, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("extract script addresses: %w", err)
	}
	if len(addrs) != 1 {
		return "", ErrNotAddressable
	}
	switch class {
	case txscript.PubKeyHashTy:
		return EncodeCashAddr(CashAddrPrefix, AddressP2PKH, addrs[0].ScriptAddress())
	case txscript.ScriptHashTy:
		return EncodeCashAddr(CashAddrPrefix, AddressP2SH, addrs[0].ScriptAddress())
	default:
		return "", ErrNotAddressable
	}
}

// ScriptIdentity renders the address of script, or the script hex when it has none.
func ScriptIdentity(script model.Script) string {
	if addr, err := ScriptAddress(script); err == nil {
		return addr
	}
	return string(script)
}

func cashAddrChecksumOf(prefix string, payload []byte) []byte {
	values := make([]byte, 0, len(prefix)+1+len(payload)+cashAddrChecksum)
	for i := 0; i < len(prefix); i++ {
		values = append(values, prefix[i]&0x1f)
	}
	values = append(values, 0)
	values = append(values, payload...)
	values = append(values, make([]byte, cashAddrChecksum)...)

	mod := cashAddrPolymod(values) ^ 1
	out := make([]byte, cashAddrChecksum)
	for i := range out {
		out[i] = byte((mod >> (5 * uint(cashAddrChecksum-1-i))) & 0x1f)
	}
	return out
}

func cashAddrPolymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		if c0&0x01 != 0 {
			c ^= 0x98f2bc8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79b76d99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf33e5fb3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae2eabe2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e4f43e470
		}
	}
	return c
}
