// Package sha256 points at github.com/minio/sha256-simd, implementing, where
// available, an accelerated SIMD implementation of sha256.
package sha256

import (
	"hash"

	sha "github.com/minio/sha256-simd"
)

const (
	Size      = sha.Size
	BlockSize = sha.BlockSize
)

// New returns a new hash.Hash computing the SHA256 checksum.
func New() hash.Hash { return sha.New() }

// Sum256 returns the SHA256 checksum of the data.
func Sum256(b []byte) [Size]byte { return sha.Sum256(b) }
