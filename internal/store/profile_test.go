package store

import (
	"errors"
	"path/filepath"
	"testing"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

func TestLoadProfileMissingFile(t *testing.T) {
	profile, err := LoadProfile(filepath.Join(t.TempDir(), "profile.toml"))
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if profile.InstallationID != "" {
		t.Errorf("Expected empty profile, got installation id %q", profile.InstallationID)
	}
}

func TestEnsureProfileMintsInstallationIDOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envkeep", "profile.toml")

	first, err := EnsureProfile(path)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	if first.InstallationID == "" {
		t.Fatal("Expected an installation id to be minted")
	}
	if first.Store.Backend != "keyring" {
		t.Errorf("Expected default backend %q, got %q", "keyring", first.Store.Backend)
	}
	if first.Keyring.Backend != "auto" {
		t.Errorf("Expected default keyring backend %q, got %q", "auto", first.Keyring.Backend)
	}
	if first.Keyring.FileDir != filepath.Join(filepath.Dir(path), "credentials") {
		t.Errorf("Unexpected default file dir %q", first.Keyring.FileDir)
	}
	if first.Vault.Mount != "secret" {
		t.Errorf("Expected default vault mount %q, got %q", "secret", first.Vault.Mount)
	}

	second, err := EnsureProfile(path)
	if err != nil {
		t.Fatalf("Second EnsureProfile failed: %v", err)
	}
	if second.InstallationID != first.InstallationID {
		t.Errorf("Installation id changed between runs: %q vs %q", first.InstallationID, second.InstallationID)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	in := &Profile{
		InstallationID: "11111111-2222-3333-4444-555555555555",
		Store:          StoreProfile{Backend: "vault"},
		Keyring:        KeyringProfile{Backend: "file", FileDir: "/tmp/creds"},
		Vault:          VaultProfile{Mount: "kv"},
	}
	if err := SaveProfile(path, in); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	out, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if *out != *in {
		t.Errorf("Round trip mismatch:\n  in:  %+v\n  out: %+v", in, out)
	}
}

func TestEnsureProfileKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := SaveProfile(path, &Profile{
		InstallationID: "existing-id",
		Store:          StoreProfile{Backend: "vault"},
		Keyring:        KeyringProfile{Backend: "pass", FileDir: "/somewhere"},
		Vault:          VaultProfile{Mount: "kv"},
	}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	profile, err := EnsureProfile(path)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	if profile.InstallationID != "existing-id" || profile.Store.Backend != "vault" ||
		profile.Keyring.Backend != "pass" || profile.Vault.Mount != "kv" {
		t.Errorf("EnsureProfile overwrote existing values: %+v", profile)
	}
}

func TestOpenSelectsKeyringWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvKeyringBackend, "file")
	t.Setenv(EnvCredentialsDir, t.TempDir())
	t.Setenv(EnvKeyringPassword, "test-password")

	st, err := Open(&Profile{}, "envkeep-test")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := st.(*Keyring); !ok {
		t.Errorf("Expected a *Keyring store, got %T", st)
	}
}

func TestOpenSelectsVault(t *testing.T) {
	// Client construction does not dial, so this stays offline.
	t.Setenv("VAULT_ADDR", "http://127.0.0.1:8200")
	st, err := Open(&Profile{Store: StoreProfile{Backend: "vault"}}, "envkeep-test")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := st.(*Vault); !ok {
		t.Errorf("Expected a *Vault store, got %T", st)
	}
}

func TestOpenUnknownStoreBackend(t *testing.T) {
	_, err := Open(&Profile{Store: StoreProfile{Backend: "clipboard"}}, "envkeep-test")
	if !errors.Is(err, kerrors.ErrUnknownBackend) {
		t.Fatalf("Expected ErrUnknownBackend, got %v", err)
	}
}
