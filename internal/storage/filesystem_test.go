package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	url, key, err := store.Store(context.Background(), []byte("png-bytes"), "generations/gen-1", "ad-01.png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if key != "generations/gen-1/ad-01.png" {
		t.Fatalf("key = %q, want %q", key, "generations/gen-1/ad-01.png")
	}
	if url != "http://localhost:8080/static/generations/gen-1/ad-01.png" {
		t.Fatalf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "generations", "gen-1", "ad-01.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored bytes = %q", data)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, _, err := store.Store(context.Background(), []byte("x"), "../..", "etc-passwd"); err == nil {
		t.Fatal("Store accepted a traversal key")
	}
}

func TestFileStoreRejectsEmptyPayload(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, _, err := store.Store(context.Background(), nil, "generations/g", "a.png"); err == nil {
		t.Fatal("Store accepted empty payload")
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"generations/g/a.png", "generations/g/a.png", false},
		{"/generations/g/a.png", "generations/g/a.png", false},
		{"./a.png", "a.png", false},
		{"a/../../b.png", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := sanitizeKey(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) accepted, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("sanitizeKey(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
