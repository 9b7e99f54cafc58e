package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"strings"
)

const apiKeyPrefix = "es_"

var apiKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// HashAPIKey returns the SHA-256 hash for the provided API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// IssueAPIKey generates a fresh API key for the vendor and stores only its
// hash. The raw key is returned exactly once.
func (v *Vendor) IssueAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	rawKey := apiKeyPrefix + strings.ToLower(apiKeyEncoding.EncodeToString(b))
	v.APIKeyHash = HashAPIKey(rawKey)
	return rawKey, nil
}
