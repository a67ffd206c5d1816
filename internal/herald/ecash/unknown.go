package ecash

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

const (
	// PreviewBytes is how much of an unknown payload is previewed.
	PreviewBytes = 20
	ellipsis     = "…"
)

func unknownInfo(data []byte, items [][]byte) model.OpReturnInfo {
	return model.OpReturnInfo{
		Protocol: model.ProtocolUnknown,
		Message:  Preview(data),
		Stack:    items,
	}
}

// Preview renders the first PreviewBytes of data as text when printable and as hex otherwise.
func Preview(data []byte) string {
	truncated := len(data) > PreviewBytes
	if truncated {
		data = data[:PreviewBytes]
	}
	text, ok := printable(data)
	if !ok {
		// a cut may split a rune; retry without the partial tail
		text, ok = printable(trimPartialRune(data))
	}
	if !ok {
		text = hex.EncodeToString(data)
	}
	if truncated {
		text += ellipsis
	}
	return text
}

// printable returns data as text when it is valid UTF-8 without control characters.
// Line breaks fold to spaces.
func printable(data []byte) (string, bool) {
	if len(data) == 0 || !utf8.Valid(data) {
		return "", false
	}
	var b strings.Builder
	for _, r := range string(data) {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case !unicode.IsPrint(r):
			return "", false
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

func trimPartialRune(data []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(data) > 0; i++ {
		if utf8.Valid(data) {
			return data
		}
		data = data[:len(data)-1]
	}
	return data
}

func text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	s, ok := printable(data)
	if !ok {
		return "", errMalformed
	}
	return s, nil
}
