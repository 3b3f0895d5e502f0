package localstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()

	if _, err := store.GetItem(ctx, "access_token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetItem() on empty store error = %v, want ErrNotFound", err)
	}
	if err := store.SetItem(ctx, "access_token", "abc123"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	got, err := store.GetItem(ctx, " access_token ")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got != "abc123" {
		t.Fatalf("GetItem() = %q, want %q", got, "abc123")
	}
	if err := store.SetItem(ctx, "access_token", "def456"); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}
	if got, _ := store.GetItem(ctx, "access_token"); got != "def456" {
		t.Fatalf("GetItem() after overwrite = %q, want %q", got, "def456")
	}
}

func TestMemoryRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()
	if err := store.SetItem(ctx, "access_token", "abc123"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.RemoveItem(ctx, "access_token"); err != nil {
			t.Fatalf("RemoveItem() call %d error = %v", i+1, err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", store.Len())
	}
	if _, err := store.GetItem(ctx, "access_token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetItem() after remove error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()
	if err := store.SetItem(ctx, "  ", "v"); err == nil {
		t.Fatal("expected empty key error")
	}
	if _, err := store.GetItem(ctx, ""); err == nil {
		t.Fatal("expected empty key error")
	}
	if err := store.RemoveItem(ctx, ""); err == nil {
		t.Fatal("expected empty key error")
	}
}

func TestZeroMemoryIsUsable(t *testing.T) {
	t.Parallel()

	var store Memory
	if err := store.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if got, err := store.GetItem(context.Background(), "k"); err != nil || got != "v" {
		t.Fatalf("GetItem() = %q, %v; want %q, nil", got, err, "v")
	}
}
