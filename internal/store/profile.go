package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// Environment overrides for backend selection. They beat the profile
// file, which makes CI and one-off runs configurable without editing it.
const (
	EnvKeyringBackend  = "ENVKEEP_KEYRING_BACKEND"
	EnvKeyringPassword = "ENVKEEP_KEYRING_PASSWORD"
	EnvCredentialsDir  = "ENVKEEP_CREDENTIALS_DIR"
)

// Profile is the user-level tool profile, persisted as TOML next to the
// secrets config. It records which credential store backs this machine
// and a stable installation id minted on first run.
type Profile struct {
	InstallationID string         `toml:"installation_id"`
	Store          StoreProfile   `toml:"store"`
	Keyring        KeyringProfile `toml:"keyring"`
	Vault          VaultProfile   `toml:"vault"`
}

type StoreProfile struct {
	// Backend selects the credential store: "keyring" or "vault".
	Backend string `toml:"backend"`
}

type KeyringProfile struct {
	Backend string `toml:"backend"`
	FileDir string `toml:"file_dir"`
}

type VaultProfile struct {
	Mount string `toml:"mount"`
}

// ProfilePath returns the default profile location,
// ~/.config/envkeep/profile.toml on Linux.
func ProfilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(configDir, "envkeep", "profile.toml"), nil
}

// LoadProfile reads the profile at path. A missing file yields an empty
// profile, not an error.
func LoadProfile(path string) (*Profile, error) {
	profile := &Profile{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return profile, nil
	}
	if _, err := toml.DecodeFile(path, profile); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// SaveProfile writes the profile to path, creating the directory if
// needed.
func SaveProfile(path string, profile *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// EnsureProfile loads the profile at path, filling defaults and minting
// the installation id on first run. The file is only written when
// something was missing.
func EnsureProfile(path string) (*Profile, error) {
	profile, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}

	changed := false
	if profile.InstallationID == "" {
		profile.InstallationID = uuid.New().String()
		changed = true
	}
	if profile.Store.Backend == "" {
		profile.Store.Backend = "keyring"
		changed = true
	}
	if profile.Keyring.Backend == "" {
		profile.Keyring.Backend = "auto"
		changed = true
	}
	if profile.Keyring.FileDir == "" {
		profile.Keyring.FileDir = filepath.Join(filepath.Dir(path), "credentials")
		changed = true
	}
	if profile.Vault.Mount == "" {
		profile.Vault.Mount = "secret"
		changed = true
	}

	if changed {
		if err := SaveProfile(path, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// Open builds the Store the profile selects, with environment overrides
// applied. The service name becomes the keyring namespace or the Vault
// path prefix.
func Open(profile *Profile, service string) (Store, error) {
	switch profile.Store.Backend {
	case "", "keyring":
		opts := KeyringOptions{
			Service:  service,
			Backend:  profile.Keyring.Backend,
			FileDir:  profile.Keyring.FileDir,
			Password: os.Getenv(EnvKeyringPassword),
		}
		if backend := os.Getenv(EnvKeyringBackend); backend != "" {
			opts.Backend = backend
		}
		if dir := os.Getenv(EnvCredentialsDir); dir != "" {
			opts.FileDir = dir
		}
		return OpenKeyring(opts)
	case "vault":
		return OpenVault(VaultOptions{Mount: profile.Vault.Mount, Namespace: service})
	default:
		return nil, fmt.Errorf("%w: %s", kerrors.ErrUnknownBackend, profile.Store.Backend)
	}
}
