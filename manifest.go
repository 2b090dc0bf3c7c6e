package cloudzcrypt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ManifestFileName is the reserved name of the encrypted name-mapping file
// at the root of a vault. A decrypt pass never processes it as payload.
const ManifestFileName = "manifest" + FileExtension

// ManifestEntry maps one original relative path to its obfuscated form.
// The JSON field names are part of the vault format.
type ManifestEntry struct {
	OriginalRelativePath   string `json:"OriginalRelativePath"`
	ObfuscatedRelativePath string `json:"ObfuscatedRelativePath"`
}

// ManifestService persists and restores the encrypted name mapping of a
// directory vault. The manifest is encrypted with the same password,
// algorithm, and KDF as the batch that wrote it.
type ManifestService struct {
	engine *Engine
}

// NewManifestService creates a manifest service backed by the engine
func NewManifestService(engine *Engine) *ManifestService {
	return &ManifestService{engine: engine}
}

// Save serializes entries to JSON and writes them encrypted to the vault
// root. Writing nothing is not an error: zero entries means no manifest.
func (m *ManifestService) Save(ctx context.Context, entries []ManifestEntry, destRoot string, req *Request) error {
	if len(entries) == 0 {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return NewCryptError("manifest", destRoot, ErrCipherOperation, err)
	}

	sep := string(m.engine.FS().Separator())
	path := joinPath(sep, destRoot, ManifestFileName)
	return m.engine.SealBytes(ctx, data, path, req.Password, req.Algorithm, req.KDF)
}

// Load reads the manifest at sourceRoot and returns an obfuscated-path to
// original-path map with case-insensitive keys. A missing, unreadable, or
// unparsable manifest returns nil: the caller falls back to suffix-stripping
// name recovery, so manifest trouble is never fatal to a decrypt.
func (m *ManifestService) Load(ctx context.Context, sourceRoot string, req *Request) map[string]string {
	fsys := m.engine.FS()
	sep := string(fsys.Separator())
	path := joinPath(sep, sourceRoot, ManifestFileName)

	if _, err := fsys.Stat(path); err != nil {
		return nil
	}

	// The manifest is decrypted to a scoped temporary file which is removed
	// on every exit path, including parse failure.
	tmpPath := joinPath(sep, fsys.TempDir(), fmt.Sprintf("czc-manifest-%s", uuid.NewString()))
	if err := m.engine.DecryptFile(ctx, path, tmpPath, req.Password, req.Algorithm, req.KDF); err != nil {
		fsys.Remove(tmpPath)
		return nil
	}
	defer fsys.Remove(tmpPath)

	f, err := fsys.Open(tmpPath)
	if err != nil {
		return nil
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil
	}

	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}

	lookup := make(map[string]string, len(entries))
	for _, entry := range entries {
		lookup[strings.ToLower(entry.ObfuscatedRelativePath)] = entry.OriginalRelativePath
	}
	return lookup
}
