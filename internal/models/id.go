package models

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a unique document id with the given type prefix plus 8 hex
// chars, e.g. "wal_3fa9c210".
func NewID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return prefix + "_00000000"
	}
	return prefix + "_" + hex.EncodeToString(b)
}
