package cloudzcrypt

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds. Every failure raised inside the file-processing pipeline
// matches exactly one of these sentinels via errors.Is, which is what the
// batch orchestrator uses to decide between aborting and continuing.
var (
	// ErrFileNotFound indicates the source file vanished or never existed
	ErrFileNotFound = errors.New("file not found")

	// ErrAccessDenied indicates the OS refused read or write permission
	ErrAccessDenied = errors.New("access denied")

	// ErrInsufficientSpace indicates the destination drive lacks the required headroom
	ErrInsufficientSpace = errors.New("insufficient disk space")

	// ErrKeyDerivation indicates the key derivation function failed internally
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrInvalidPassword indicates AEAD tag verification failed on decrypt.
	// Wrong password and tampered ciphertext are indistinguishable here.
	ErrInvalidPassword = errors.New("invalid password or corrupted data")

	// ErrCorruptedFile indicates the source is too short to contain a valid header
	ErrCorruptedFile = errors.New("corrupted file")

	// ErrCipherOperation indicates any other cryptographic or streaming I/O failure
	ErrCipherOperation = errors.New("cipher operation failed")
)

// CryptError is a structured pipeline failure. Kind is always one of the
// sentinel errors above; Err carries the underlying cause when there is one.
type CryptError struct {
	Op   string // "encrypt", "decrypt", "derive", "manifest", ...
	Path string // file path, if applicable
	Kind error  // classification sentinel
	Err  error  // underlying error, may be nil
}

func (e *CryptError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

// Unwrap exposes both the classification sentinel and the underlying cause
// so that errors.Is matches either.
func (e *CryptError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewCryptError creates a classified pipeline error
func NewCryptError(op, path string, kind, err error) error {
	return &CryptError{Op: op, Path: path, Kind: kind, Err: err}
}

// ValidationError represents a configuration or parameter validation error
type ValidationError struct {
	Field   string // the field or parameter that failed validation
	Value   any    // the invalid value
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsFatal reports whether an error kind indicates a systemic condition that
// would recur identically for every remaining file in a batch. The
// orchestrator aborts the whole batch on these; everything else is recorded
// per file and the batch continues.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrInsufficientSpace) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrKeyDerivation)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// classifyFSError maps an OS-level filesystem error to a pipeline kind.
// Unrecognized errors fall through to ErrCipherOperation.
func classifyFSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrFileNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrAccessDenied
	default:
		return ErrCipherOperation
	}
}
