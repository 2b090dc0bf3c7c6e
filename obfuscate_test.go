package cloudzcrypt

import (
	"regexp"
	"testing"
)

func TestIdentityObfuscator(t *testing.T) {
	o := NewNameObfuscator(ObfuscateNone)
	if got := o.Obfuscate("/src/docs/readme.md", "readme.md"); got != "readme.md" {
		t.Errorf("identity changed the segment: %q", got)
	}
}

func TestRandomObfuscator(t *testing.T) {
	o := NewNameObfuscator(ObfuscateRandom)
	hexName := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got := o.Obfuscate("/src/a", "a")
		if !hexName.MatchString(got) {
			t.Fatalf("random name %q is not a 32-char identifier", got)
		}
		if seen[got] {
			t.Fatalf("random obfuscator repeated %q", got)
		}
		seen[got] = true
	}
}

func TestHashObfuscators(t *testing.T) {
	tests := []struct {
		name    string
		mode    ObfuscationMode
		wantLen int
	}{
		{name: "sha256", mode: ObfuscateSHA256, wantLen: 32},
		{name: "sha512", mode: ObfuscateSHA512, wantLen: 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewNameObfuscator(tt.mode)

			a := o.Obfuscate("/src/docs", "docs")
			b := o.Obfuscate("/src/docs", "docs")
			c := o.Obfuscate("/src/other", "other")

			if len(a) != tt.wantLen {
				t.Errorf("digest name is %d chars, want %d", len(a), tt.wantLen)
			}
			if a != b {
				t.Error("same path produced different names")
			}
			if a == c {
				t.Error("different paths produced the same name")
			}
		})
	}
}

func TestSegmentCache(t *testing.T) {
	cache := segmentCache{}

	if _, ok := cache.lookup("docs"); ok {
		t.Error("empty cache reported a hit")
	}

	cache.store("docs", "x1")
	got, ok := cache.lookup("docs")
	if !ok || got != "x1" {
		t.Errorf("lookup = %q, %v; want %q, true", got, ok, "x1")
	}

	// Same segment name under a different parent is a different key.
	if _, ok := cache.lookup("sub/docs"); ok {
		t.Error("cache conflated segments with different relative paths")
	}
}
