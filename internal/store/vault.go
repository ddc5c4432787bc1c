package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	vaultapi "github.com/hashicorp/vault/api"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

// vaultValueField is the single field each secret is stored under.
const vaultValueField = "value"

// VaultOptions configures the HashiCorp Vault backend.
type VaultOptions struct {
	// Mount is the KV v2 mount point. Defaults to "secret".
	Mount string
	// Namespace is the path prefix under the mount, so an account lands
	// at <mount>/<namespace>/<account>. Empty means no prefix.
	Namespace string
}

// Vault is a Store backed by a Vault KV v2 secret engine. Each account
// is one secret path holding a single "value" field. Address, TLS, and
// token come from the standard VAULT_* environment variables.
type Vault struct {
	client *vaultapi.Client
	mount  string
	prefix string
}

// OpenVault builds an authenticated Vault client from the environment.
func OpenVault(opts VaultOptions) (*Vault, error) {
	cfg := vaultapi.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("%w: reading vault environment: %v", kerrors.ErrStoreUnavailable, err)
	}

	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: creating vault client: %v", kerrors.ErrStoreUnavailable, err)
	}
	if token := os.Getenv("VAULT_TOKEN"); token != "" {
		client.SetToken(token)
	}

	mount := opts.Mount
	if mount == "" {
		mount = "secret"
	}
	return &Vault{client: client, mount: mount, prefix: opts.Namespace}, nil
}

func (v *Vault) secretPath(account string) string {
	if v.prefix == "" {
		return account
	}
	return v.prefix + "/" + account
}

func (v *Vault) Get(ctx context.Context, account string) (string, error) {
	secret, err := v.client.KVv2(v.mount).Get(ctx, v.secretPath(account))
	if err != nil {
		if isVaultNotFound(err) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, account)
		}
		return "", fmt.Errorf("%w: reading %s: %v", kerrors.ErrStoreUnavailable, account, err)
	}
	// KV v2 can return a secret whose current version is deleted; Data
	// is nil in that case.
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, account)
	}
	raw, ok := secret.Data[vaultValueField]
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, account)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("secret %s holds a non-string value", account)
	}
	return value, nil
}

func (v *Vault) Set(ctx context.Context, account, value string) error {
	data := map[string]interface{}{vaultValueField: value}
	if _, err := v.client.KVv2(v.mount).Put(ctx, v.secretPath(account), data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrStoreUnavailable, account, err)
	}
	return nil
}

func (v *Vault) Delete(ctx context.Context, account string) error {
	err := v.client.KVv2(v.mount).Delete(ctx, v.secretPath(account))
	if err != nil && !isVaultNotFound(err) {
		return fmt.Errorf("%w: deleting %s: %v", kerrors.ErrStoreUnavailable, account, err)
	}
	return nil
}

func isVaultNotFound(err error) bool {
	if errors.Is(err, vaultapi.ErrSecretNotFound) {
		return true
	}
	var respErr *vaultapi.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 404
}
