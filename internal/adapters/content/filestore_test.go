package content_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/example/tradeflow/internal/adapters/content"
	"github.com/example/tradeflow/internal/ports/secondary"
)

func TestFileStore_PutGet(t *testing.T) {
	store, err := content.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	payload := []byte("%PDF-1.7 shipping note")
	ref, err := store.Put(ctx, payload, secondary.ResourceSpec{
		Filename: "shipping-note.pdf",
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if ref == "" {
		t.Fatal("expected non-empty reference")
	}

	got, spec, err := store.Get(ctx, ref)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("content round trip mismatch")
	}
	if spec.Filename != "shipping-note.pdf" {
		t.Errorf("expected filename preserved, got '%s'", spec.Filename)
	}
	if spec.MimeType != "application/pdf" {
		t.Errorf("expected mime type preserved, got '%s'", spec.MimeType)
	}
}

func TestFileStore_IdenticalContentSharesReference(t *testing.T) {
	store, err := content.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	payload := []byte("identical bytes")
	first, err := store.Put(ctx, payload, secondary.ResourceSpec{Filename: "a.pdf"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	second, err := store.Put(ctx, payload, secondary.ResourceSpec{Filename: "b.pdf"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if first != second {
		t.Errorf("expected identical content to share a reference: %s vs %s", first, second)
	}
}

func TestFileStore_RejectsEmptyContent(t *testing.T) {
	store, err := content.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, err := store.Put(context.Background(), nil, secondary.ResourceSpec{}); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestFileStore_Get_InvalidRef(t *testing.T) {
	store, err := content.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	if _, _, err := store.Get(ctx, "../escape"); err == nil {
		t.Error("expected error for path traversal reference")
	}
	if _, _, err := store.Get(ctx, "deadbeef"); err == nil {
		t.Error("expected error for unknown reference")
	}
}
