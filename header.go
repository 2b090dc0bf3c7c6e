package cloudzcrypt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// On-disk ciphertext layout:
//
//	[32 bytes salt][12 bytes nonce][ciphertext][16 bytes auth tag]
//
// There is no magic number, version byte, or algorithm identifier. The
// algorithm and KDF used at encrypt time must be supplied out-of-band at
// decrypt time; feeding the wrong ones produces a tag verification failure
// indistinguishable from a wrong password. Existing vaults depend on this
// exact layout.
const (
	// SaltSize is the key derivation salt size in bytes
	SaltSize = 32

	// NonceSize is the AEAD nonce size in bytes
	NonceSize = 12

	// TagSize is the AEAD authentication tag size in bytes
	TagSize = 16

	// HeaderSize is the plaintext header size preceding the ciphertext
	HeaderSize = SaltSize + NonceSize
)

// FileHeader is the plaintext header written at the start of every
// encrypted file. Salts and nonces are not secret.
type FileHeader struct {
	Salt  []byte
	Nonce []byte
}

// NewFileHeader generates a header with a fresh random salt and nonce.
// A fresh salt per file yields a fresh key, which is what keeps every
// (key, nonce) pairing unique.
func NewFileHeader() (*FileHeader, error) {
	h := &FileHeader{
		Salt:  make([]byte, SaltSize),
		Nonce: make([]byte, NonceSize),
	}
	if _, err := rand.Read(h.Salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := rand.Read(h.Nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return h, nil
}

// WriteTo writes the header to the given writer
func (h *FileHeader) WriteTo(w io.Writer) (int64, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	n, err := w.Write(h.Salt)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write salt: %w", err)
	}
	m, err := w.Write(h.Nonce)
	if err != nil {
		return int64(n + m), fmt.Errorf("failed to write nonce: %w", err)
	}
	return int64(n + m), nil
}

// ReadFrom reads the header from the given reader. A short read means the
// source cannot be a valid encrypted file.
func (h *FileHeader) ReadFrom(r io.Reader) (int64, error) {
	h.Salt = make([]byte, SaltSize)
	h.Nonce = make([]byte, NonceSize)

	n, err := io.ReadFull(r, h.Salt)
	if err != nil {
		return int64(n), NewCryptError("decrypt", "", ErrCorruptedFile, fmt.Errorf("short header: %w", err))
	}
	m, err := io.ReadFull(r, h.Nonce)
	if err != nil {
		return int64(n + m), NewCryptError("decrypt", "", ErrCorruptedFile, fmt.Errorf("short header: %w", err))
	}
	return int64(n + m), nil
}

// Validate checks the header field sizes
func (h *FileHeader) Validate() error {
	if len(h.Salt) != SaltSize {
		return NewValidationError("salt", len(h.Salt), fmt.Sprintf("salt must be %d bytes", SaltSize))
	}
	if len(h.Nonce) != NonceSize {
		return NewValidationError("nonce", len(h.Nonce), fmt.Sprintf("nonce must be %d bytes", NonceSize))
	}
	return nil
}
