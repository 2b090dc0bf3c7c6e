package cloudzcrypt

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NameObfuscator renames a single path segment during an encrypt pass.
// Strategies are one-way: decryption never inverts them, it consults the
// manifest instead.
type NameObfuscator interface {
	// Obfuscate maps a segment of sourceAbsPath to its destination name.
	// sourceAbsPath is the absolute path of the segment being renamed.
	Obfuscate(sourceAbsPath, segment string) string
}

// NewNameObfuscator resolves an obfuscation mode to its strategy
func NewNameObfuscator(mode ObfuscationMode) NameObfuscator {
	switch mode {
	case ObfuscateRandom:
		return randomObfuscator{}
	case ObfuscateSHA256:
		return hashObfuscator{wide: false}
	case ObfuscateSHA512:
		return hashObfuscator{wide: true}
	default:
		return identityObfuscator{}
	}
}

// identityObfuscator passes segments through unchanged
type identityObfuscator struct{}

func (identityObfuscator) Obfuscate(sourceAbsPath, segment string) string {
	return segment
}

// randomObfuscator replaces each segment with a fresh random identifier.
// Consistency for shared directory segments comes from the per-batch cache,
// not from the strategy.
type randomObfuscator struct{}

func (randomObfuscator) Obfuscate(sourceAbsPath, segment string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// hashObfuscator replaces each segment with a hex digest of its absolute
// path, truncated to keep names short. Deterministic across runs.
type hashObfuscator struct {
	wide bool // true selects SHA-512
}

func (h hashObfuscator) Obfuscate(sourceAbsPath, segment string) string {
	if h.wide {
		sum := sha512.Sum512([]byte(sourceAbsPath))
		return hex.EncodeToString(sum[:24])
	}
	sum := sha256.Sum256([]byte(sourceAbsPath))
	return hex.EncodeToString(sum[:16])
}

// segmentCache guarantees that a directory segment shared by several files
// maps to the same obfuscated name within one batch. Keys are segment paths
// relative to the batch root. Owned by a single batch invocation.
type segmentCache map[string]string

func (c segmentCache) lookup(relPath string) (string, bool) {
	v, ok := c[relPath]
	return v, ok
}

func (c segmentCache) store(relPath, obfuscated string) {
	c[relPath] = obfuscated
}
