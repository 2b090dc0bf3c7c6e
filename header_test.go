package cloudzcrypt

import (
	"bytes"
	"errors"
	"testing"
)

func TestFileHeader_RoundTrip(t *testing.T) {
	h, err := NewFileHeader()
	if err != nil {
		t.Fatalf("NewFileHeader failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != HeaderSize {
		t.Fatalf("wrote %d bytes, want %d", n, HeaderSize)
	}

	read := &FileHeader{}
	m, err := read.ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if m != HeaderSize {
		t.Fatalf("read %d bytes, want %d", m, HeaderSize)
	}
	if !bytes.Equal(read.Salt, h.Salt) {
		t.Error("salt mismatch after round trip")
	}
	if !bytes.Equal(read.Nonce, h.Nonce) {
		t.Error("nonce mismatch after round trip")
	}
}

func TestFileHeader_FreshRandomness(t *testing.T) {
	a, err := NewFileHeader()
	if err != nil {
		t.Fatalf("NewFileHeader failed: %v", err)
	}
	b, err := NewFileHeader()
	if err != nil {
		t.Fatalf("NewFileHeader failed: %v", err)
	}
	if bytes.Equal(a.Salt, b.Salt) {
		t.Error("two headers share a salt")
	}
	if bytes.Equal(a.Nonce, b.Nonce) {
		t.Error("two headers share a nonce")
	}
}

func TestFileHeader_ReadFrom_Short(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "empty", size: 0},
		{name: "salt only", size: SaltSize},
		{name: "one short of full header", size: HeaderSize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &FileHeader{}
			_, err := h.ReadFrom(bytes.NewReader(make([]byte, tt.size)))
			if err == nil {
				t.Fatal("expected error for truncated header")
			}
			if !errors.Is(err, ErrCorruptedFile) {
				t.Errorf("error is %v, want ErrCorruptedFile", err)
			}
		})
	}
}

func TestFileHeader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		header  FileHeader
		wantErr bool
	}{
		{name: "valid", header: FileHeader{Salt: make([]byte, SaltSize), Nonce: make([]byte, NonceSize)}},
		{name: "short salt", header: FileHeader{Salt: make([]byte, 16), Nonce: make([]byte, NonceSize)}, wantErr: true},
		{name: "short nonce", header: FileHeader{Salt: make([]byte, SaltSize), Nonce: make([]byte, 8)}, wantErr: true},
		{name: "nil fields", header: FileHeader{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
