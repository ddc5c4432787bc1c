package store

import (
	"context"
)

// Store is a named-secret credential store. Implementations persist one
// string value per account name inside a service namespace.
//
// Get returns ErrSecretNotFound (wrapped) when the account holds no
// value. Set is an upsert. Delete of an absent account is not an error.
type Store interface {
	Get(ctx context.Context, account string) (string, error)
	Set(ctx context.Context, account, value string) error
	Delete(ctx context.Context, account string) error
}
