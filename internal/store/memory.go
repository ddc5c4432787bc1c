package store

import (
	"context"
	"fmt"
	"sync"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// Memory is an in-process Store backed by a map. Test suites run against
// it; nothing persists past the process.
type Memory struct {
	mu      sync.Mutex
	secrets map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{secrets: make(map[string]string)}
}

// Seed replaces the store contents with the given account → value map.
func (m *Memory) Seed(values map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets = make(map[string]string, len(values))
	for account, value := range values {
		m.secrets[account] = value
	}
}

// Snapshot returns a copy of the current contents.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.secrets))
	for account, value := range m.secrets {
		out[account] = value
	}
	return out
}

func (m *Memory) Get(ctx context.Context, account string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.secrets[account]
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, account)
	}
	return value, nil
}

func (m *Memory) Set(ctx context.Context, account, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[account] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.secrets, account)
	return nil
}
