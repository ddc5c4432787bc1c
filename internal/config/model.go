package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// Defaults applied when the corresponding [settings] key is absent.
const (
	DefaultService = "secrets-manager"
	DefaultEnvFile = "~/.env"
	DefaultLogFile = "/tmp/secrets-manager-export.log"
)

// Settings holds the [settings] section after defaulting and home expansion.
type Settings struct {
	// Service is the credential store namespace secrets are stored under.
	Service string

	// EnvFile is the path of the global env file written by export.
	EnvFile string

	// LogFile is the path of the append-only export log.
	LogFile string
}

// SecretDefinition describes one managed secret: the account name it is
// stored under in the credential store, the environment variable it is
// written to, and a human-readable description.
type SecretDefinition struct {
	Account     string
	EnvVar      string
	Description string
}

// ProjectMapping associates a directory with the subset of environment
// variables its .env file should receive. Vars entries that match no
// SecretDefinition are inert: ignored at export, never an error.
type ProjectMapping struct {
	Path string
	Vars []string
}

// Config is the immutable in-memory model of the declarative config.
// Declaration order of Secrets and Projects is preserved: it drives the
// ordering of env file contents and of listings.
type Config struct {
	Settings Settings
	Secrets  []SecretDefinition
	Projects []ProjectMapping

	byAccount map[string]int
	byEnvVar  map[string]int
}

// New assembles a Config from parsed sections, applying defaults for empty
// settings, expanding a leading ~ in path-typed values, and building the
// lookup indexes. Duplicate account names or env vars are rejected.
func New(settings Settings, secrets []SecretDefinition, projects []ProjectMapping) (*Config, error) {
	if settings.Service == "" {
		settings.Service = DefaultService
	}
	if settings.EnvFile == "" {
		settings.EnvFile = DefaultEnvFile
	}
	if settings.LogFile == "" {
		settings.LogFile = DefaultLogFile
	}
	settings.EnvFile = ExpandHome(settings.EnvFile)
	settings.LogFile = ExpandHome(settings.LogFile)

	if len(secrets) == 0 {
		return nil, kerrors.ErrNoSecretsDefined
	}

	cfg := &Config{
		Settings:  settings,
		Secrets:   secrets,
		Projects:  make([]ProjectMapping, 0, len(projects)),
		byAccount: make(map[string]int, len(secrets)),
		byEnvVar:  make(map[string]int, len(secrets)),
	}

	for i, def := range secrets {
		if _, exists := cfg.byAccount[def.Account]; exists {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrDuplicateAccount, def.Account)
		}
		if _, exists := cfg.byEnvVar[def.EnvVar]; exists {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrDuplicateEnvVar, def.EnvVar)
		}
		cfg.byAccount[def.Account] = i
		cfg.byEnvVar[def.EnvVar] = i
	}

	for _, p := range projects {
		p.Path = ExpandHome(p.Path)
		cfg.Projects = append(cfg.Projects, p)
	}

	return cfg, nil
}

// DefinitionForAccount returns the definition stored under the given
// account name.
func (c *Config) DefinitionForAccount(account string) (SecretDefinition, bool) {
	i, ok := c.byAccount[account]
	if !ok {
		return SecretDefinition{}, false
	}
	return c.Secrets[i], true
}

// DefinitionForEnvVar returns the definition whose env var matches name.
func (c *Config) DefinitionForEnvVar(name string) (SecretDefinition, bool) {
	i, ok := c.byEnvVar[name]
	if !ok {
		return SecretDefinition{}, false
	}
	return c.Secrets[i], true
}

// Resolve looks a user-supplied name up as an account name first, then as
// an env var. Commands accept either form.
func (c *Config) Resolve(name string) (SecretDefinition, bool) {
	if def, ok := c.DefinitionForAccount(name); ok {
		return def, true
	}
	return c.DefinitionForEnvVar(name)
}

// DefaultPath returns the config file location: $ENVKEEP_CONFIG when set,
// otherwise <user config dir>/envkeep/secrets.conf.
func DefaultPath() (string, error) {
	if p := os.Getenv("ENVKEEP_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "envkeep", "secrets.conf"), nil
}

// ExpandHome replaces a leading ~ with the caller's home directory. This is
// the only path normalization performed; relative paths are left as-is and
// the ~user form is not supported.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
