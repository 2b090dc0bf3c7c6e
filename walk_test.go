package cloudzcrypt

import (
	"reflect"
	"testing"
)

func TestWalkFiles(t *testing.T) {
	fsys := newTestFS(t)
	writeTestFile(t, fsys, "/tree/z.txt", []byte("zz"))
	writeTestFile(t, fsys, "/tree/a.txt", []byte("a"))
	writeTestFile(t, fsys, "/tree/sub/deep/x.bin", []byte("xxxx"))
	writeTestFile(t, fsys, "/tree/sub/b.txt", []byte("bbb"))
	if err := fsys.MkdirAll("/tree/empty", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	entries, err := walkFiles(fsys, "/tree")
	if err != nil {
		t.Fatalf("walkFiles failed: %v", err)
	}

	want := []walkEntry{
		{relPath: "a.txt", size: 1},
		{relPath: "sub/b.txt", size: 3},
		{relPath: "sub/deep/x.bin", size: 4},
		{relPath: "z.txt", size: 2},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("walkFiles = %+v, want %+v", entries, want)
	}
}

func TestWalkFiles_MissingRoot(t *testing.T) {
	fsys := newTestFS(t)
	if _, err := walkFiles(fsys, "/nowhere"); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		elems []string
		want  string
	}{
		{elems: []string{"/vault", "a.txt"}, want: "/vault/a.txt"},
		{elems: []string{"/vault/", "/sub/", "b"}, want: "/vault/sub/b"},
		{elems: []string{"rel", "c"}, want: "rel/c"},
		{elems: []string{"/", "d"}, want: "/d"},
		{elems: []string{"/", "/", "d"}, want: "/d"},
		{elems: []string{"/"}, want: "/"},
		{elems: []string{"/vault", "", "e"}, want: "/vault/e"},
	}

	for _, tt := range tests {
		if got := joinPath("/", tt.elems...); got != tt.want {
			t.Errorf("joinPath(%v) = %q, want %q", tt.elems, got, tt.want)
		}
	}
}

func TestDirOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/vault/sub/file.txt", want: "/vault/sub"},
		{path: "/file.txt", want: "/"},
		{path: "file.txt", want: ""},
		{path: "sub/file.txt", want: "sub"},
	}

	for _, tt := range tests {
		if got := dirOf(tt.path, "/"); got != tt.want {
			t.Errorf("dirOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		rel  string
		want []string
	}{
		{rel: "a/b/c", want: []string{"a", "b", "c"}},
		{rel: "single", want: []string{"single"}},
		{rel: "/leading/trailing/", want: []string{"leading", "trailing"}},
	}

	for _, tt := range tests {
		if got := splitSegments(tt.rel, "/"); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSegments(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}
