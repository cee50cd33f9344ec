package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable HMAC-SHA256 hash
// instances, keyed with the key passed to InitHasherPool. The sync
// endpoints sign and verify request bodies on every push, so hashers
// are pooled rather than allocated per request.
var hasherPool sync.Pool

// InitHasherPool initializes the package-level pool of HMAC-SHA256
// hashers. Every hasher in the pool is keyed with hashKey. Must be
// called once at startup before Hash is used.
//
//	utils.InitHasherPool(cfg.App.HashKey)
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 signature over data using a hasher taken
// from the pool. The hasher is reset before and after use and returned
// to the pool, so callers may invoke Hash concurrently.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString computes an HMAC-SHA256 signature over data with hashKey
// and returns the hex-encoded digest. Unlike Hash it does not touch the
// pool and builds a fresh HMAC instance per call, which suits one-off
// signing on the client side where the pool may not be initialized.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
