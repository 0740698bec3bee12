package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "7/123_notes.pdf", strings.NewReader("hello")); err != nil {
		t.Fatal(err)
	}
	body, err := store.Get(ctx, "7/123_notes.pdf")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(body)
	_ = body.Close()
	if string(data) != "hello" {
		t.Fatalf("bytes = %q", data)
	}

	if err := store.Remove(ctx, "7/123_notes.pdf"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "7/123_notes.pdf"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalStoreRemoveMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(context.Background(), "nope/missing.txt"); err != nil {
		t.Fatalf("remove of missing key errored: %v", err)
	}
}

func TestLocalStoreConfinesTraversalKeys(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "../../escape.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(base), "escape.txt")); err == nil {
		t.Fatal("key escaped the base directory")
	}
	if _, err := os.Stat(filepath.Join(base, "escape.txt")); err != nil {
		t.Fatalf("traversal key not confined under base: %v", err)
	}
}
