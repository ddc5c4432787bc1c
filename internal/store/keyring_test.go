package store

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// The file backend works headless, so the keyring store is exercised
// for real against a temp directory. Password is fixed to avoid the
// terminal prompt.
func openTestKeyring(t *testing.T) *Keyring {
	t.Helper()
	k, err := OpenKeyring(KeyringOptions{
		Service:  "envkeep-test",
		Backend:  "file",
		FileDir:  t.TempDir(),
		Password: "test-password",
	})
	if err != nil {
		t.Fatalf("OpenKeyring failed: %v", err)
	}
	return k
}

func TestKeyringFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	k := openTestKeyring(t)

	if _, err := k.Get(ctx, "openai-api-key"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Fatalf("Expected ErrSecretNotFound for missing account, got %v", err)
	}

	if err := k.Set(ctx, "openai-api-key", "sk-test-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := k.Get(ctx, "openai-api-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "sk-test-123" {
		t.Errorf("Expected %q, got %q", "sk-test-123", value)
	}

	if err := k.Set(ctx, "openai-api-key", "sk-test-456"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	value, _ = k.Get(ctx, "openai-api-key")
	if value != "sk-test-456" {
		t.Errorf("Expected upserted value %q, got %q", "sk-test-456", value)
	}

	if err := k.Delete(ctx, "openai-api-key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := k.Get(ctx, "openai-api-key"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound after delete, got %v", err)
	}
	if err := k.Delete(ctx, "openai-api-key"); err != nil {
		t.Errorf("Deleting an absent account should not error, got %v", err)
	}
}

func TestOpenKeyringUnknownBackend(t *testing.T) {
	_, err := OpenKeyring(KeyringOptions{Service: "envkeep-test", Backend: "palm-reader"})
	if !errors.Is(err, kerrors.ErrUnknownBackend) {
		t.Fatalf("Expected ErrUnknownBackend, got %v", err)
	}
}

func TestBackendNames(t *testing.T) {
	names := BackendNames()
	want := map[string]bool{"auto": false, "file": false, "keychain": false}
	for _, name := range names {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Expected %q in backend names %v", name, names)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Expected sorted names, got %v", names)
		}
	}
}
