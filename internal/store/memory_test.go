package store

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "github-token"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Fatalf("Expected ErrSecretNotFound for missing account, got %v", err)
	}

	if err := m.Set(ctx, "github-token", "ghp_abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := m.Get(ctx, "github-token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "ghp_abc" {
		t.Errorf("Expected %q, got %q", "ghp_abc", value)
	}

	// Set is an upsert.
	if err := m.Set(ctx, "github-token", "ghp_def"); err != nil {
		t.Fatalf("Second Set failed: %v", err)
	}
	value, _ = m.Get(ctx, "github-token")
	if value != "ghp_def" {
		t.Errorf("Expected overwritten value %q, got %q", "ghp_def", value)
	}

	if err := m.Delete(ctx, "github-token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(ctx, "github-token"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound after delete, got %v", err)
	}

	// Deleting again is not an error.
	if err := m.Delete(ctx, "github-token"); err != nil {
		t.Errorf("Second Delete failed: %v", err)
	}
}

func TestMemorySeedAndSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed(map[string]string{"a": "1", "b": "2"})

	value, err := m.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "2" {
		t.Errorf("Expected %q, got %q", "2", value)
	}

	snap := m.Snapshot()
	snap["c"] = "3"
	if _, err := m.Get(ctx, "c"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Error("Mutating a snapshot must not leak into the store")
	}

	// Seed replaces, not merges.
	m.Seed(map[string]string{"x": "9"})
	if _, err := m.Get(ctx, "a"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Error("Seed should replace previous contents")
	}
}
