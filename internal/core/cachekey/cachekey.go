// Package cachekey derives the deterministic cache digest for an
// analysis request.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// For returns the hex digest of the trimmed text. Byte-identical text
// after trimming yields the same key regardless of caller identity.
func For(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}
