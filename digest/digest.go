// Package digest computes a content digest over decompressed output, for
// chain-of-custody logging alongside a stream's Adler-32 trailer. It is
// deliberately decoupled from package flate and only ever runs on bytes
// flate has already validated.
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Sum256 returns the hex-encoded BLAKE2b-256 digest of data.
func Sum256(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
