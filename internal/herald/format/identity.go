package format

import "strings"

// IdentityWidth is the longest identity rendered without truncation.
const IdentityWidth = 9

const identityKeep = 3

// Identity shortens an address, hash or txid to first3...last3 after stripping any
// network prefix such as "ecash:".
func Identity(s string) string {
	if _, rest, ok := strings.Cut(s, ":"); ok {
		s = rest
	}
	if len(s) <= IdentityWidth {
		return s
	}
	return s[:identityKeep] + "..." + s[len(s)-identityKeep:]
}
