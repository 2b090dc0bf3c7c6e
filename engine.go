package cloudzcrypt

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/absfs/absfs"
)

const (
	// FileExtension marks encrypted files. It carries no algorithm
	// information; it only says "this is an encrypted file".
	FileExtension = ".czc"

	// streamChunkSize is the read granularity of the streaming pipeline.
	// Cancellation is checked once per chunk.
	streamChunkSize = 4 * 1024

	// spaceOverheadDivisor and spaceOverheadFixed define the disk-space
	// preflight headroom: ceil(size * 1.2) + 1024 bytes.
	spaceOverheadDivisor = 5
	spaceOverheadFixed   = 1024
)

// Engine is the streaming encryption/decryption pipeline. It is written
// once against the KeyDeriver and cipherStream contracts and is agnostic to
// which concrete KDF and cipher are plugged in.
type Engine struct {
	fs    absfs.FileSystem
	space SpaceChecker
}

// NewEngine creates an engine over the given filesystem. space may be nil,
// in which case the disk-space preflight is skipped.
func NewEngine(base absfs.FileSystem, space SpaceChecker) *Engine {
	return &Engine{fs: base, space: space}
}

// FS returns the filesystem the engine operates on
func (e *Engine) FS() absfs.FileSystem {
	return e.fs
}

// requiredSpace computes the preflight headroom for a source of the given size
func requiredSpace(srcSize int64) uint64 {
	overhead := (srcSize + spaceOverheadDivisor - 1) / spaceOverheadDivisor
	return uint64(srcSize + overhead + spaceOverheadFixed)
}

// EncryptStream encrypts src into dst using a fresh salt and nonce.
// The destination receives the plaintext header followed by the ciphertext
// and trailing authentication tag.
func (e *Engine) EncryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) error {
	header, err := NewFileHeader()
	if err != nil {
		return NewCryptError("encrypt", "", ErrCipherOperation, err)
	}

	deriver, err := NewKeyDeriver(kdf)
	if err != nil {
		return err
	}
	key, err := deriver.DeriveKey(password, header.Salt, KeySize)
	if err != nil {
		return err
	}
	defer zero(key)

	stream, err := newCipherStream(alg, key, header.Nonce, directionEncrypt)
	if err != nil {
		return NewCryptError("encrypt", "", ErrCipherOperation, err)
	}

	if _, err := header.WriteTo(dst); err != nil {
		return NewCryptError("encrypt", "", ErrCipherOperation, err)
	}

	if err := e.feed(ctx, src, stream); err != nil {
		return err
	}

	out, err := stream.Finalize()
	if err != nil {
		return NewCryptError("encrypt", "", ErrCipherOperation, err)
	}
	if _, err := dst.Write(out); err != nil {
		return NewCryptError("encrypt", "", ErrCipherOperation, err)
	}
	return nil
}

// DecryptStream reverses EncryptStream. The header is read and validated
// before any key derivation happens; a tag mismatch is reported as
// ErrInvalidPassword since a wrong password and tampered ciphertext are
// indistinguishable.
func (e *Engine) DecryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) error {
	header := &FileHeader{}
	if _, err := header.ReadFrom(src); err != nil {
		return err
	}

	deriver, err := NewKeyDeriver(kdf)
	if err != nil {
		return err
	}
	key, err := deriver.DeriveKey(password, header.Salt, KeySize)
	if err != nil {
		return err
	}
	defer zero(key)

	stream, err := newCipherStream(alg, key, header.Nonce, directionDecrypt)
	if err != nil {
		return NewCryptError("decrypt", "", ErrCipherOperation, err)
	}

	if err := e.feed(ctx, src, stream); err != nil {
		return err
	}

	plaintext, err := stream.Finalize()
	if err != nil {
		return NewCryptError("decrypt", "", ErrInvalidPassword, err)
	}
	if _, err := dst.Write(plaintext); err != nil {
		return NewCryptError("decrypt", "", ErrCipherOperation, err)
	}
	return nil
}

// feed pumps src through the stream adapter in fixed-size chunks, checking
// for cancellation between chunks.
func (e *Engine) feed(ctx context.Context, src io.Reader, stream *cipherStream) error {
	buf := make([]byte, streamChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := src.Read(buf)
		if n > 0 {
			stream.Process(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return NewCryptError("read", "", ErrCipherOperation, err)
		}
	}
}

// EncryptFile encrypts the file at srcPath into dstPath. A failed attempt
// never leaves a partial destination file behind.
func (e *Engine) EncryptFile(ctx context.Context, srcPath, dstPath string, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) error {
	info, err := e.fs.Stat(srcPath)
	if err != nil {
		return NewCryptError("encrypt", srcPath, classifyFSError(err), err)
	}

	if e.space != nil {
		if free, ok := e.space.FreeSpace(dstPath); ok && free < requiredSpace(info.Size()) {
			return NewCryptError("encrypt", dstPath, ErrInsufficientSpace,
				fmt.Errorf("need %d bytes, %d available", requiredSpace(info.Size()), free))
		}
	}

	src, err := e.fs.Open(srcPath)
	if err != nil {
		return NewCryptError("encrypt", srcPath, classifyFSError(err), err)
	}
	defer src.Close()

	return e.writeDest(ctx, dstPath, func(dst absfs.File) error {
		return e.EncryptStream(ctx, src, dst, password, alg, kdf)
	})
}

// DecryptFile decrypts the file at srcPath into dstPath. Files shorter than
// the header are rejected as corrupted before any key derivation is
// attempted. A failed attempt never leaves a partial destination file behind.
func (e *Engine) DecryptFile(ctx context.Context, srcPath, dstPath string, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) error {
	info, err := e.fs.Stat(srcPath)
	if err != nil {
		return NewCryptError("decrypt", srcPath, classifyFSError(err), err)
	}
	if info.Size() < HeaderSize {
		return NewCryptError("decrypt", srcPath, ErrCorruptedFile,
			fmt.Errorf("file is %d bytes, minimum is %d", info.Size(), HeaderSize))
	}

	src, err := e.fs.Open(srcPath)
	if err != nil {
		return NewCryptError("decrypt", srcPath, classifyFSError(err), err)
	}
	defer src.Close()

	return e.writeDest(ctx, dstPath, func(dst absfs.File) error {
		return e.DecryptStream(ctx, src, dst, password, alg, kdf)
	})
}

// SealBytes encrypts an in-memory payload to dstPath using the identical
// header and stream logic as EncryptFile. Used for the manifest.
func (e *Engine) SealBytes(ctx context.Context, data []byte, dstPath string, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) error {
	return e.writeDest(ctx, dstPath, func(dst absfs.File) error {
		return e.EncryptStream(ctx, bytes.NewReader(data), dst, password, alg, kdf)
	})
}

// OpenBytes decrypts the file at srcPath into memory
func (e *Engine) OpenBytes(ctx context.Context, srcPath string, password []byte, alg EncryptionAlgorithm, kdf KeyDerivationAlgorithm) ([]byte, error) {
	info, err := e.fs.Stat(srcPath)
	if err != nil {
		return nil, NewCryptError("decrypt", srcPath, classifyFSError(err), err)
	}
	if info.Size() < HeaderSize {
		return nil, NewCryptError("decrypt", srcPath, ErrCorruptedFile,
			fmt.Errorf("file is %d bytes, minimum is %d", info.Size(), HeaderSize))
	}

	src, err := e.fs.Open(srcPath)
	if err != nil {
		return nil, NewCryptError("decrypt", srcPath, classifyFSError(err), err)
	}
	defer src.Close()

	var out bytes.Buffer
	if err := e.DecryptStream(ctx, src, &out, password, alg, kdf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeDest creates the destination file, runs op against it, and removes
// the partial file if anything fails. Removal is best-effort.
func (e *Engine) writeDest(ctx context.Context, dstPath string, op func(dst absfs.File) error) error {
	if dir := dirOf(dstPath, string(e.fs.Separator())); dir != "" {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return NewCryptError("write", dstPath, classifyFSError(err), err)
		}
	}

	dst, err := e.fs.Create(dstPath)
	if err != nil {
		return NewCryptError("write", dstPath, classifyFSError(err), err)
	}

	if err := op(dst); err != nil {
		dst.Close()
		e.fs.Remove(dstPath)
		return err
	}

	if err := dst.Close(); err != nil {
		e.fs.Remove(dstPath)
		return NewCryptError("write", dstPath, classifyFSError(err), err)
	}
	return nil
}
