package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/99designs/keyring"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// backendTypes maps user-facing backend names to keyring backends.
var backendTypes = map[string]keyring.BackendType{
	"keychain":       keyring.KeychainBackend,
	"secret-service": keyring.SecretServiceBackend,
	"wincred":        keyring.WinCredBackend,
	"kwallet":        keyring.KWalletBackend,
	"keyctl":         keyring.KeyCtlBackend,
	"pass":           keyring.PassBackend,
	"file":           keyring.FileBackend,
}

// KeyringOptions configures the OS keyring backend.
type KeyringOptions struct {
	// Service is the keyring namespace secrets are stored under.
	Service string
	// Backend pins a specific keyring backend by name. Empty or "auto"
	// lets the library pick the best one available on this platform.
	Backend string
	// FileDir is where the file backend keeps its encrypted entries.
	FileDir string
	// Password unlocks the file backend without prompting. Empty means
	// prompt on the terminal when the file backend needs unlocking.
	Password string
}

// Keyring is a Store backed by the OS credential manager via the
// 99designs/keyring library (Keychain, Secret Service, wincred, and
// friends, with an encrypted file fallback).
type Keyring struct {
	ring keyring.Keyring
}

// OpenKeyring opens the configured keyring backend.
func OpenKeyring(opts KeyringOptions) (*Keyring, error) {
	cfg := keyring.Config{
		ServiceName: opts.Service,
		FileDir:     opts.FileDir,
	}
	if cfg.FileDir == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			cfg.FileDir = filepath.Join(configDir, "envkeep", "credentials")
		}
	}
	if opts.Password != "" {
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.Password)
	} else {
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	if opts.Backend != "" && opts.Backend != "auto" {
		backendType, ok := backendTypes[opts.Backend]
		if !ok {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrUnknownBackend, opts.Backend)
		}
		cfg.AllowedBackends = []keyring.BackendType{backendType}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrStoreUnavailable, err)
	}
	return &Keyring{ring: ring}, nil
}

func (k *Keyring) Get(ctx context.Context, account string) (string, error) {
	item, err := k.ring.Get(account)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, account)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s from keyring: %w", account, err)
	}
	return string(item.Data), nil
}

func (k *Keyring) Set(ctx context.Context, account, value string) error {
	err := k.ring.Set(keyring.Item{
		Key:         account,
		Data:        []byte(value),
		Label:       account,
		Description: "envkeep managed secret",
	})
	if err != nil {
		return fmt.Errorf("storing %s in keyring: %w", account, err)
	}
	return nil
}

func (k *Keyring) Delete(ctx context.Context, account string) error {
	err := k.ring.Remove(account)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing %s from keyring: %w", account, err)
	}
	return nil
}

// BackendNames returns the recognized backend names, sorted, plus "auto".
// Error messages and help text use it so the list never drifts from the
// map above.
func BackendNames() []string {
	names := make([]string, 0, len(backendTypes)+1)
	names = append(names, "auto")
	for name := range backendTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableBackendNames reports which recognized backends the keyring
// library considers usable on this platform.
func AvailableBackendNames() []string {
	available := keyring.AvailableBackends()
	var names []string
	for name, backendType := range backendTypes {
		for _, avail := range available {
			if avail == backendType {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}
