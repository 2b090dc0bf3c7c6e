package cloudzcrypt

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation cost parameters. These are fixed by the vault format and
// deliberately not user-tunable: every file encrypted by this engine must be
// decryptable with nothing but the password and the KDF selection.
const (
	// KeySize is the derived key size in bytes (256-bit keys for every cipher)
	KeySize = 32

	argon2Memory      = 128 * 1024 // KiB
	argon2Iterations  = 5
	argon2Parallelism = 4

	pbkdf2Iterations = 800_000
)

// KeyDeriver turns a password and salt into key bytes. Implementations are
// stateless and safe to share across concurrent invocations.
type KeyDeriver interface {
	// DeriveKey derives size key bytes from the password and salt
	DeriveKey(password, salt []byte, size int) ([]byte, error)

	// Algorithm identifies the KDF variant
	Algorithm() KeyDerivationAlgorithm
}

// NewKeyDeriver resolves a KDF variant to its implementation
func NewKeyDeriver(alg KeyDerivationAlgorithm) (KeyDeriver, error) {
	switch alg {
	case KDFArgon2id:
		return argon2idDeriver{}, nil
	case KDFPBKDF2:
		return pbkdf2Deriver{}, nil
	default:
		return nil, NewValidationError("kdf", alg, "unsupported key derivation algorithm")
	}
}

// zero overwrites a sensitive buffer
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// checkDeriveArgs validates the shared DeriveKey preconditions
func checkDeriveArgs(salt []byte, size int) error {
	if len(salt) != SaltSize {
		return NewValidationError("salt", len(salt), fmt.Sprintf("salt must be %d bytes", SaltSize))
	}
	if size <= 0 {
		return NewValidationError("size", size, "key size must be positive")
	}
	return nil
}

// argon2idDeriver derives keys with the Argon2id memory-hard function
type argon2idDeriver struct{}

func (argon2idDeriver) Algorithm() KeyDerivationAlgorithm { return KDFArgon2id }

func (argon2idDeriver) DeriveKey(password, salt []byte, size int) (key []byte, err error) {
	if err := checkDeriveArgs(salt, size); err != nil {
		return nil, err
	}

	// The derivation works on a private copy of the password so the copy can
	// be wiped on every exit path without touching the caller's buffer.
	pw := make([]byte, len(password))
	copy(pw, password)
	defer zero(pw)

	defer func() {
		if r := recover(); r != nil {
			zero(key)
			key = nil
			err = NewCryptError("derive", "", ErrKeyDerivation, fmt.Errorf("argon2id: %v", r))
		}
	}()

	key = argon2.IDKey(pw, salt, argon2Iterations, argon2Memory, argon2Parallelism, uint32(size))
	if len(key) != size {
		zero(key)
		return nil, NewCryptError("derive", "", ErrKeyDerivation, fmt.Errorf("argon2id returned %d bytes, want %d", len(key), size))
	}
	return key, nil
}

// pbkdf2Deriver derives keys with PBKDF2-HMAC-SHA256
type pbkdf2Deriver struct{}

func (pbkdf2Deriver) Algorithm() KeyDerivationAlgorithm { return KDFPBKDF2 }

func (pbkdf2Deriver) DeriveKey(password, salt []byte, size int) (key []byte, err error) {
	if err := checkDeriveArgs(salt, size); err != nil {
		return nil, err
	}

	pw := make([]byte, len(password))
	copy(pw, password)
	defer zero(pw)

	defer func() {
		if r := recover(); r != nil {
			zero(key)
			key = nil
			err = NewCryptError("derive", "", ErrKeyDerivation, fmt.Errorf("pbkdf2: %v", r))
		}
	}()

	key = pbkdf2.Key(pw, salt, pbkdf2Iterations, size, sha256.New)
	if len(key) != size {
		zero(key)
		return nil, NewCryptError("derive", "", ErrKeyDerivation, fmt.Errorf("pbkdf2 returned %d bytes, want %d", len(key), size))
	}
	return key, nil
}
