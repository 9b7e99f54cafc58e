// Package hashid turns raw client identifiers (IP, user agent) into short
// one-way tokens. Raw values are never persisted, only these hashes.
package hashid

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenLength is the hex length tokens are truncated to. At the expected
// event volume (low millions) the collision probability at 128 bits stays
// negligible.
const TokenLength = 32

// Hash returns the deterministic one-way token for a raw identifier.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:TokenLength]
}
