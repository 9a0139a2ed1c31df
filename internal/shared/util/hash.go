package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user identifier to a stable storage partition so raw
// ids never appear in object keys.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:8])
}
