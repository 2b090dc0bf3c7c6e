package cloudzcrypt

import (
	"context"
	"testing"
)

func manifestTestRequest(password string) *Request {
	return &Request{
		SourcePath:      "/vault",
		DestinationPath: "/out",
		Password:        []byte(password),
		Algorithm:       AlgorithmAES256GCM,
		KDF:             KDFPBKDF2,
		Operation:       OpEncrypt,
	}
}

func TestManifest_RoundTrip(t *testing.T) {
	fsys := newTestFS(t)
	svc := NewManifestService(NewEngine(fsys, nil))
	ctx := context.Background()
	req := manifestTestRequest("vault password")

	entries := []ManifestEntry{
		{OriginalRelativePath: "docs/readme.md", ObfuscatedRelativePath: "A1B2/C3D4" + FileExtension},
		{OriginalRelativePath: "photo.jpg", ObfuscatedRelativePath: "E5F6" + FileExtension},
	}

	if err := svc.Save(ctx, entries, "/vault", req); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := fsys.Stat("/vault/" + ManifestFileName); err != nil {
		t.Fatalf("manifest file was not written: %v", err)
	}

	lookup := svc.Load(ctx, "/vault", req)
	if lookup == nil {
		t.Fatal("Load returned nil for a valid manifest")
	}
	if len(lookup) != len(entries) {
		t.Fatalf("Load returned %d entries, want %d", len(lookup), len(entries))
	}

	// Lookup keys are case-insensitive.
	if got := lookup["a1b2/c3d4"+FileExtension]; got != "docs/readme.md" {
		t.Errorf("lookup[a1b2/c3d4] = %q, want docs/readme.md", got)
	}
	if got := lookup["e5f6"+FileExtension]; got != "photo.jpg" {
		t.Errorf("lookup[e5f6] = %q, want photo.jpg", got)
	}
}

func TestManifest_SaveNothing(t *testing.T) {
	fsys := newTestFS(t)
	svc := NewManifestService(NewEngine(fsys, nil))
	req := manifestTestRequest("pw")

	if err := svc.Save(context.Background(), nil, "/vault", req); err != nil {
		t.Fatalf("Save with zero entries failed: %v", err)
	}
	if _, err := fsys.Stat("/vault/" + ManifestFileName); err == nil {
		t.Error("Save with zero entries wrote a manifest file")
	}
}

func TestManifest_LoadFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		fsys := newTestFS(t)
		svc := NewManifestService(NewEngine(fsys, nil))
		if got := svc.Load(ctx, "/vault", manifestTestRequest("pw")); got != nil {
			t.Errorf("Load of missing manifest = %v, want nil", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		fsys := newTestFS(t)
		svc := NewManifestService(NewEngine(fsys, nil))
		entries := []ManifestEntry{{OriginalRelativePath: "a", ObfuscatedRelativePath: "b"}}
		if err := svc.Save(ctx, entries, "/vault", manifestTestRequest("right")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if got := svc.Load(ctx, "/vault", manifestTestRequest("wrong")); got != nil {
			t.Errorf("Load with wrong password = %v, want nil", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		fsys := newTestFS(t)
		svc := NewManifestService(NewEngine(fsys, nil))
		writeTestFile(t, fsys, "/vault/"+ManifestFileName, []byte("not an encrypted file"))
		if got := svc.Load(ctx, "/vault", manifestTestRequest("pw")); got != nil {
			t.Errorf("Load of garbage manifest = %v, want nil", got)
		}
	})
}
