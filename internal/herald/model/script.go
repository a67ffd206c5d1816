package model

import (
	"encoding/hex"
	"strings"
)

// Script is a hex encoded output script. Two scripts are equal when their bytes are equal,
// so the hex form is always kept lowercase.
type Script string

// NewScript returns the Script for raw script bytes.
func NewScript(b []byte) Script {
	return Script(hex.EncodeToString(b))
}

// Bytes decodes the script.
func (s Script) Bytes() ([]byte, error) {
	return hex.DecodeString(string(s))
}

// UnmarshalText normalizes hex case so equality stays byte exact.
func (s *Script) UnmarshalText(text []byte) error {
	*s = Script(strings.ToLower(string(text)))
	return nil
}

// IsOpReturn reports whether the script starts with OP_RETURN.
func (s Script) IsOpReturn() bool {
	return strings.HasPrefix(string(s), "6a")
}
