package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a "<category>:<hash>" cache key from the given parts.
// Parts are JSON-encoded before hashing so distinct tuples can never
// collide through naive string concatenation.
func hashKey(category string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", category, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 content hash of data as a 64-character hex
// string. The pipeline uses it to fingerprint a graph's canonical JSON.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
