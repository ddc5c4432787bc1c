package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/envfile"
	"github.com/fennwick/envkeep/internal/store"
)

// testConfig builds a three-secret config whose global env file and
// operation log live under dir.
func testConfig(t *testing.T, dir string, projects []config.ProjectMapping) *config.Config {
	t.Helper()
	cfg, err := config.New(
		config.Settings{
			Service: "envkeep-test",
			EnvFile: filepath.Join(dir, ".env"),
			LogFile: filepath.Join(dir, "export.log"),
		},
		[]config.SecretDefinition{
			{Account: "openai", EnvVar: "OPENAI_API_KEY", Description: "OpenAI key"},
			{Account: "github", EnvVar: "GITHUB_TOKEN", Description: "GitHub token"},
			{Account: "database", EnvVar: "DATABASE_URL", Description: "Postgres DSN"},
		},
		projects,
	)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	return cfg
}

// seededStore returns a memory store holding all three test secrets.
func seededStore() *store.Memory {
	m := store.NewMemory()
	m.Seed(map[string]string{
		"openai":   "sk-test-abc123",
		"github":   "ghp_testtoken",
		"database": "postgres://u:p@h/db",
	})
	return m
}

// faultStore wraps Memory with injectable per-account failures.
type faultStore struct {
	*store.Memory
	failGet map[string]bool
	failSet map[string]bool
}

func (f *faultStore) Get(ctx context.Context, account string) (string, error) {
	if f.failGet[account] {
		return "", errors.New("backend unreachable")
	}
	return f.Memory.Get(ctx, account)
}

func (f *faultStore) Set(ctx context.Context, account, value string) error {
	if f.failSet[account] {
		return errors.New("backend write refused")
	}
	return f.Memory.Set(ctx, account, value)
}

// readPairs parses the env file at path, failing the test on error.
func readPairs(t *testing.T, path string) []envfile.Pair {
	t.Helper()
	pairs, err := envfile.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s failed: %v", path, err)
	}
	return pairs
}

func keysOf(pairs []envfile.Pair) []string {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
