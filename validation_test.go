package cloudzcrypt

import (
	"strings"
	"testing"
)

func TestOrchestratorValidate(t *testing.T) {
	fsys := newTestFS(t)
	writeTestFile(t, fsys, "/exists.txt", []byte("x"))
	o := NewOrchestrator(fsys)

	valid := func() *Request {
		return &Request{
			SourcePath:      "/exists.txt",
			DestinationPath: "/out.czc",
			Password:        []byte("long enough password"),
			Algorithm:       AlgorithmAES256GCM,
			KDF:             KDFArgon2id,
			Operation:       OpEncrypt,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Request)
		problem string // empty means no problems expected
	}{
		{name: "valid", mutate: func(r *Request) {}},
		{name: "empty source", mutate: func(r *Request) { r.SourcePath = "" }, problem: "source path is empty"},
		{name: "empty destination", mutate: func(r *Request) { r.DestinationPath = "" }, problem: "destination path is empty"},
		{name: "same paths", mutate: func(r *Request) { r.DestinationPath = r.SourcePath }, problem: "same path"},
		{name: "empty password", mutate: func(r *Request) { r.Password = nil }, problem: "password is empty"},
		{name: "bad algorithm", mutate: func(r *Request) { r.Algorithm = EncryptionAlgorithm(200) }, problem: "unsupported encryption algorithm"},
		{name: "bad kdf", mutate: func(r *Request) { r.KDF = KeyDerivationAlgorithm(200) }, problem: "unsupported key derivation"},
		{name: "missing source", mutate: func(r *Request) { r.SourcePath = "/gone.txt" }, problem: "does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			problems := o.Validate(req)

			if tt.problem == "" {
				if len(problems) != 0 {
					t.Errorf("expected no problems, got %v", problems)
				}
				return
			}
			if !containsSubstring(problems, tt.problem) {
				t.Errorf("problems %v do not mention %q", problems, tt.problem)
			}
		})
	}

	if got := o.Validate(nil); len(got) != 1 {
		t.Errorf("Validate(nil) = %v, want a single problem", got)
	}
}

func TestAnalyzeWarnings(t *testing.T) {
	fsys := newTestFS(t)
	writeTestFile(t, fsys, "/src/a.txt", []byte("content"))
	writeTestFile(t, fsys, "/occupied/old.txt", []byte("x"))
	writeTestFile(t, fsys, "/vault/file"+FileExtension, patternBytes(100))

	t.Run("short password", func(t *testing.T) {
		o := NewOrchestrator(fsys)
		req := &Request{SourcePath: "/src", DestinationPath: "/fresh", Password: []byte("short"), Operation: OpEncrypt}
		if !containsSubstring(o.AnalyzeWarnings(req), "shorter than") {
			t.Error("short password was not flagged")
		}
	})

	t.Run("long password silent", func(t *testing.T) {
		o := NewOrchestrator(fsys)
		req := &Request{SourcePath: "/src", DestinationPath: "/fresh", Password: []byte("plenty long password"), Operation: OpEncrypt}
		if containsSubstring(o.AnalyzeWarnings(req), "shorter than") {
			t.Error("adequate password was flagged")
		}
	})

	t.Run("occupied destination", func(t *testing.T) {
		o := NewOrchestrator(fsys)
		req := &Request{SourcePath: "/src", DestinationPath: "/occupied", Password: []byte("plenty long password"), Operation: OpEncrypt}
		if !containsSubstring(o.AnalyzeWarnings(req), "not empty") {
			t.Error("occupied destination was not flagged")
		}
	})

	t.Run("tight space", func(t *testing.T) {
		o := NewOrchestrator(fsys, WithSpaceChecker(fixedSpace{free: 10, known: true}))
		req := &Request{SourcePath: "/src", DestinationPath: "/fresh", Password: []byte("plenty long password"), Operation: OpEncrypt}
		if !containsSubstring(o.AnalyzeWarnings(req), "free space") {
			t.Error("tight destination space was not flagged")
		}
	})

	t.Run("decrypt without manifest", func(t *testing.T) {
		o := NewOrchestrator(fsys)
		req := &Request{SourcePath: "/vault", DestinationPath: "/out", Password: []byte("plenty long password"), Operation: OpDecrypt}
		if !containsSubstring(o.AnalyzeWarnings(req), "no manifest") {
			t.Error("missing manifest was not flagged")
		}
	})

	t.Run("nil request", func(t *testing.T) {
		o := NewOrchestrator(fsys)
		if got := o.AnalyzeWarnings(nil); got != nil {
			t.Errorf("AnalyzeWarnings(nil) = %v, want nil", got)
		}
	})
}

func TestPasswordsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "secret", b: "secret", want: true},
		{a: "secret", b: "Secret", want: false},
		{a: "secret", b: "secret ", want: false},
		{a: "", b: "", want: true},
	}

	for _, tt := range tests {
		if got := PasswordsMatch([]byte(tt.a), []byte(tt.b)); got != tt.want {
			t.Errorf("PasswordsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
