package hashid

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashLengthAndDeterminism(t *testing.T) {
	h1 := Hash("203.0.113.7")
	h2 := Hash("203.0.113.7")

	assert.Len(t, h1, TokenLength)
	assert.Equal(t, h1, h2)
}

func TestHashIsTruncatedSHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("input"))
	full := hex.EncodeToString(sum[:])

	assert.Equal(t, full[:TokenLength], Hash("input"))
}

func TestHashDiffersPerInput(t *testing.T) {
	assert.NotEqual(t, Hash("a"), Hash("b"))
	assert.NotEqual(t, Hash(""), Hash(" "))
}
