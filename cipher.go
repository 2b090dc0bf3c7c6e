package cloudzcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/aead/camellia"
	"github.com/aead/serpent"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/twofish"
)

// NewAEAD creates the authenticated cipher for the given algorithm and a
// 256-bit key. The four block ciphers all use a 128-bit block and are wrapped
// in GCM; ChaCha20-Poly1305 is a dedicated AEAD construction. Every variant
// uses a 12-byte nonce and a 16-byte tag, so the engine is completely
// agnostic to which one is plugged in.
func NewAEAD(alg EncryptionAlgorithm, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, NewValidationError("key", len(key), fmt.Sprintf("key must be %d bytes", KeySize))
	}

	switch alg {
	case AlgorithmAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		return cipher.NewGCM(block)

	case AlgorithmChaCha20Poly1305:
		return chacha20poly1305.New(key)

	case AlgorithmTwofishGCM:
		block, err := twofish.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create Twofish cipher: %w", err)
		}
		return cipher.NewGCM(block)

	case AlgorithmSerpentGCM:
		block, err := serpent.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create Serpent cipher: %w", err)
		}
		return cipher.NewGCM(block)

	case AlgorithmCamelliaGCM:
		block, err := camellia.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create Camellia cipher: %w", err)
		}
		return cipher.NewGCM(block)

	default:
		return nil, NewValidationError("algorithm", alg, "unsupported encryption algorithm")
	}
}

// direction selects which way a cipherStream transforms bytes
type direction uint8

const (
	directionEncrypt direction = iota
	directionDecrypt
)

// cipherStream adapts the one-shot AEAD to incremental process/finalize
// semantics. Process accumulates input; Finalize runs the single seal or
// open over the whole payload, producing one trailing authentication tag as
// the on-disk format requires. The accumulation bounds memory to the payload
// size, which is acceptable for a local file vault.
type cipherStream struct {
	aead  cipher.AEAD
	nonce []byte
	dir   direction
	buf   []byte
	done  bool
}

// newCipherStream creates a stream adapter for one file's payload
func newCipherStream(alg EncryptionAlgorithm, key, nonce []byte, dir direction) (*cipherStream, error) {
	aead, err := NewAEAD(alg, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, NewValidationError("nonce", len(nonce), fmt.Sprintf("nonce must be %d bytes", aead.NonceSize()))
	}
	return &cipherStream{
		aead:  aead,
		nonce: append([]byte(nil), nonce...),
		dir:   dir,
	}, nil
}

// Process buffers the next input chunk
func (s *cipherStream) Process(p []byte) {
	s.buf = append(s.buf, p...)
}

// Finalize runs the AEAD over the buffered payload. In decrypt direction a
// tag mismatch surfaces as an error; this is the only mechanism for
// detecting a wrong password or tampering.
func (s *cipherStream) Finalize() ([]byte, error) {
	if s.done {
		return nil, fmt.Errorf("cipher stream already finalized")
	}
	s.done = true

	switch s.dir {
	case directionEncrypt:
		return s.aead.Seal(nil, s.nonce, s.buf, nil), nil
	case directionDecrypt:
		plaintext, err := s.aead.Open(nil, s.nonce, s.buf, nil)
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		return plaintext, nil
	default:
		return nil, fmt.Errorf("invalid cipher stream direction")
	}
}
