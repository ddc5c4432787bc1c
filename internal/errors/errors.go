package errors

import "errors"

// Config errors indicate the declarative config could not be loaded.
// They abort an invocation before the store or the filesystem is touched.
var (
	// ErrConfigNotFound indicates the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrNoSecretsDefined indicates parsing finished with zero valid secret
	// definitions. This is the one config condition that aborts startup;
	// everything else is defaulted or skipped.
	ErrNoSecretsDefined = errors.New("no secrets defined in config")

	// ErrDuplicateAccount indicates two secret definitions share an account name.
	ErrDuplicateAccount = errors.New("duplicate account name in config")

	// ErrDuplicateEnvVar indicates two secret definitions share an environment
	// variable name.
	ErrDuplicateEnvVar = errors.New("duplicate environment variable in config")
)

// Store errors indicate issues reaching or querying the credential store.
var (
	// ErrSecretNotFound indicates the store holds no entry for the account.
	ErrSecretNotFound = errors.New("secret not found in store")

	// ErrUnknownBackend indicates the configured store backend name is not
	// one of the supported backends.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrStoreUnavailable indicates the store backend could not be opened.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// File errors indicate issues with generated env files.
var (
	// ErrNotGenerated indicates a file lacks the generated-file header and
	// will not be removed by clean.
	ErrNotGenerated = errors.New("file was not generated by envkeep")
)

// Input errors indicate unusable user-supplied values.
var (
	// ErrEmptySecretValue indicates an empty value was supplied for storage.
	ErrEmptySecretValue = errors.New("secret value is empty")

	// ErrUnknownSecretName indicates a name that matches neither an account
	// name nor an environment variable in the config.
	ErrUnknownSecretName = errors.New("name does not match any configured secret")
)
