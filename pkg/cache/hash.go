package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashKeywords hashes an ordered keyword list. Order matters because it
// decides the trie's child order and therefore the DOT text.
func HashKeywords(keywords []string) string {
	h := sha256.New()
	for _, kw := range keywords {
		// Length prefix keeps ["ab","c"] and ["a","bc"] apart.
		fmt.Fprintf(h, "%d:", len(kw))
		h.Write([]byte(kw))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ShortHash returns the first n characters of a hash for display.
func ShortHash(hash string, n int) string {
	hash = strings.TrimSpace(hash)
	if n <= 0 || len(hash) <= n {
		return hash
	}
	return hash[:n]
}
