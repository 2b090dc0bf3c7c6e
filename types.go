package cloudzcrypt

// EncryptionAlgorithm identifies a cipher+mode pairing
type EncryptionAlgorithm uint8

const (
	// AlgorithmAES256GCM uses AES-256 with Galois/Counter Mode
	AlgorithmAES256GCM EncryptionAlgorithm = iota
	// AlgorithmChaCha20Poly1305 uses ChaCha20 stream cipher with Poly1305 MAC
	AlgorithmChaCha20Poly1305
	// AlgorithmTwofishGCM uses Twofish-256 in Galois/Counter Mode
	AlgorithmTwofishGCM
	// AlgorithmSerpentGCM uses Serpent-256 in Galois/Counter Mode
	AlgorithmSerpentGCM
	// AlgorithmCamelliaGCM uses Camellia-256 in Galois/Counter Mode
	AlgorithmCamelliaGCM
)

// String returns the stable identifier of the algorithm
func (a EncryptionAlgorithm) String() string {
	switch a {
	case AlgorithmAES256GCM:
		return "aes-256-gcm"
	case AlgorithmChaCha20Poly1305:
		return "chacha20-poly1305"
	case AlgorithmTwofishGCM:
		return "twofish-gcm"
	case AlgorithmSerpentGCM:
		return "serpent-gcm"
	case AlgorithmCamelliaGCM:
		return "camellia-gcm"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable name of the algorithm
func (a EncryptionAlgorithm) DisplayName() string {
	switch a {
	case AlgorithmAES256GCM:
		return "AES-256-GCM"
	case AlgorithmChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	case AlgorithmTwofishGCM:
		return "Twofish-GCM"
	case AlgorithmSerpentGCM:
		return "Serpent-GCM"
	case AlgorithmCamelliaGCM:
		return "Camellia-GCM"
	default:
		return "Unknown"
	}
}

// Description returns descriptive text suitable for display
func (a EncryptionAlgorithm) Description() string {
	switch a {
	case AlgorithmAES256GCM:
		return "Advanced Encryption Standard with 256-bit keys in authenticated GCM mode; hardware accelerated on most CPUs"
	case AlgorithmChaCha20Poly1305:
		return "Modern stream cipher with Poly1305 authentication; fast on platforms without AES hardware support"
	case AlgorithmTwofishGCM:
		return "Twofish block cipher (AES finalist) with 256-bit keys in authenticated GCM mode"
	case AlgorithmSerpentGCM:
		return "Serpent block cipher (AES finalist) with 256-bit keys in authenticated GCM mode"
	case AlgorithmCamelliaGCM:
		return "Camellia block cipher with 256-bit keys in authenticated GCM mode"
	default:
		return ""
	}
}

// Valid reports whether the algorithm is a known variant
func (a EncryptionAlgorithm) Valid() bool {
	return a <= AlgorithmCamelliaGCM
}

// Algorithms returns all supported encryption algorithms
func Algorithms() []EncryptionAlgorithm {
	return []EncryptionAlgorithm{
		AlgorithmAES256GCM,
		AlgorithmChaCha20Poly1305,
		AlgorithmTwofishGCM,
		AlgorithmSerpentGCM,
		AlgorithmCamelliaGCM,
	}
}

// ParseAlgorithm resolves an algorithm id to its variant
func ParseAlgorithm(s string) (EncryptionAlgorithm, error) {
	for _, a := range Algorithms() {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, NewValidationError("algorithm", s, "unsupported encryption algorithm")
}

// KeyDerivationAlgorithm identifies a password-based key derivation function
type KeyDerivationAlgorithm uint8

const (
	// KDFArgon2id uses the Argon2id memory-hard function
	KDFArgon2id KeyDerivationAlgorithm = iota
	// KDFPBKDF2 uses PBKDF2 with HMAC-SHA256
	KDFPBKDF2
)

// String returns the stable identifier of the KDF
func (k KeyDerivationAlgorithm) String() string {
	switch k {
	case KDFArgon2id:
		return "argon2id"
	case KDFPBKDF2:
		return "pbkdf2"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable name of the KDF
func (k KeyDerivationAlgorithm) DisplayName() string {
	switch k {
	case KDFArgon2id:
		return "Argon2id"
	case KDFPBKDF2:
		return "PBKDF2-HMAC-SHA256"
	default:
		return "Unknown"
	}
}

// Valid reports whether the KDF is a known variant
func (k KeyDerivationAlgorithm) Valid() bool {
	return k == KDFArgon2id || k == KDFPBKDF2
}

// KeyDerivationAlgorithms returns all supported key derivation functions
func KeyDerivationAlgorithms() []KeyDerivationAlgorithm {
	return []KeyDerivationAlgorithm{KDFArgon2id, KDFPBKDF2}
}

// ParseKDF resolves a KDF id to its variant
func ParseKDF(s string) (KeyDerivationAlgorithm, error) {
	for _, k := range KeyDerivationAlgorithms() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, NewValidationError("kdf", s, "unsupported key derivation algorithm")
}

// Operation selects the direction of a file processing request
type Operation uint8

const (
	// OpEncrypt encrypts plaintext sources into the vault format
	OpEncrypt Operation = iota
	// OpDecrypt reverses the vault format back to plaintext
	OpDecrypt
)

// String returns the operation name
func (o Operation) String() string {
	switch o {
	case OpEncrypt:
		return "encrypt"
	case OpDecrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

// ObfuscationMode selects the name obfuscation strategy for an encrypt pass
type ObfuscationMode uint8

const (
	// ObfuscateNone keeps original file and directory names
	ObfuscateNone ObfuscationMode = iota
	// ObfuscateRandom replaces each path segment with a random identifier
	ObfuscateRandom
	// ObfuscateSHA256 replaces each path segment with a SHA-256 digest of its absolute path
	ObfuscateSHA256
	// ObfuscateSHA512 replaces each path segment with a SHA-512 digest of its absolute path
	ObfuscateSHA512
)

// String returns the obfuscation mode name
func (m ObfuscationMode) String() string {
	switch m {
	case ObfuscateNone:
		return "none"
	case ObfuscateRandom:
		return "random"
	case ObfuscateSHA256:
		return "sha256"
	case ObfuscateSHA512:
		return "sha512"
	default:
		return "unknown"
	}
}

// ParseObfuscationMode resolves an obfuscation mode name to its variant
func ParseObfuscationMode(s string) (ObfuscationMode, error) {
	for _, m := range []ObfuscationMode{ObfuscateNone, ObfuscateRandom, ObfuscateSHA256, ObfuscateSHA512} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, NewValidationError("obfuscation", s, "unsupported obfuscation mode")
}

// Request carries everything needed for one user-initiated operation.
// It is created once per operation and never mutated by the pipeline.
type Request struct {
	// SourcePath is the file or directory to process
	SourcePath string

	// DestinationPath is the file or directory to write results to
	DestinationPath string

	// Password is the secret used for key derivation. The caller retains
	// ownership of the buffer.
	Password []byte

	// Algorithm selects the AEAD cipher
	Algorithm EncryptionAlgorithm

	// KDF selects the key derivation function
	KDF KeyDerivationAlgorithm

	// Operation selects encrypt or decrypt
	Operation Operation

	// Obfuscation selects the name obfuscation strategy (encrypt only)
	Obfuscation ObfuscationMode
}

// Validate checks the structural validity of the request
func (r *Request) Validate() error {
	if r == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}
	if r.SourcePath == "" {
		return NewValidationError("source", r.SourcePath, "source path cannot be empty")
	}
	if r.DestinationPath == "" {
		return NewValidationError("destination", r.DestinationPath, "destination path cannot be empty")
	}
	if len(r.Password) == 0 {
		return NewValidationError("password", nil, "password cannot be empty")
	}
	if !r.Algorithm.Valid() {
		return NewValidationError("algorithm", r.Algorithm, "unsupported encryption algorithm")
	}
	if !r.KDF.Valid() {
		return NewValidationError("kdf", r.KDF, "unsupported key derivation algorithm")
	}
	if r.Operation != OpEncrypt && r.Operation != OpDecrypt {
		return NewValidationError("operation", r.Operation, "unsupported operation")
	}
	return nil
}
