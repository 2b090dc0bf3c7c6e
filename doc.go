// Package cloudzcrypt is a local, password-based file encryption vault:
// it encrypts and decrypts individual files or whole directory trees using
// a selectable authenticated cipher and a selectable password-based key
// derivation function, optionally obfuscating file and directory names, and
// recording an encrypted manifest used to restore original names on
// decryption.
//
// # Supported Cipher Suites
//
//   - AES-256-GCM
//   - ChaCha20-Poly1305
//   - Twofish-GCM
//   - Serpent-GCM
//   - Camellia-GCM
//
// All variants provide authenticated encryption with a 128-bit tag and a
// 96-bit nonce. Keys are always 256 bits, derived per file from the
// password and a fresh random salt via Argon2id or PBKDF2-HMAC-SHA256.
//
// # On-Disk Format
//
// Every encrypted file starts with a 32-byte salt followed by a 12-byte
// nonce; the ciphertext and trailing 16-byte authentication tag follow.
// The format carries no algorithm identifier: the cipher and KDF used at
// encrypt time must be supplied again at decrypt time.
//
// # Basic Usage
//
//	orch := cloudzcrypt.NewOrchestrator(cloudzcrypt.NewOSFS("/"),
//	    cloudzcrypt.WithSpaceChecker(cloudzcrypt.OSSpaceChecker{}))
//
//	req := &cloudzcrypt.Request{
//	    SourcePath:      "/home/alice/documents",
//	    DestinationPath: "/home/alice/vault",
//	    Password:        []byte("correct horse battery staple"),
//	    Algorithm:       cloudzcrypt.AlgorithmAES256GCM,
//	    KDF:             cloudzcrypt.KDFArgon2id,
//	    Operation:       cloudzcrypt.OpEncrypt,
//	    Obfuscation:     cloudzcrypt.ObfuscateRandom,
//	}
//
//	if problems := orch.Validate(req); len(problems) > 0 {
//	    // surface problems; nothing was attempted
//	}
//	result := orch.Execute(ctx, req)
//
// A batch that fails on some files still returns a populated partial
// result; only a systemic condition (wrong password, permission refusal,
// full disk, key derivation failure) aborts the whole batch early.
package cloudzcrypt
