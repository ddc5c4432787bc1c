// Package errors provides typed error values for the envkeep application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by the layer that produces them:
//
//   - Config errors: the declarative config is missing or unusable
//     (ErrConfigNotFound, ErrNoSecretsDefined, ErrDuplicateAccount).
//     These are fatal and abort before any store or filesystem access.
//   - Store errors: credential store access issues (ErrSecretNotFound,
//     ErrStoreUnavailable). Inside batch operations these degrade to
//     "absent" rather than aborting the batch.
//   - File errors: generated env file issues (ErrNotGenerated).
//   - Input errors: unusable user-supplied values (ErrEmptySecretValue).
//
// # Usage
//
// Return errors from internal packages, wrapping for context:
//
//	return nil, fmt.Errorf("%w: %s", errors.ErrDuplicateAccount, name)
//
// Handle them in the CLI layer:
//
//	cfg, err := config.Load(path)
//	if errors.Is(err, kerrors.ErrNoSecretsDefined) {
//	    // Point the user at envkeep init.
//	}
//
// Secret values never appear in error strings.
package errors
