// Package store abstracts the credential store that holds secret values.
//
// The Store interface is one value per account name inside a service
// namespace. Two real backends exist: the OS keyring (via
// 99designs/keyring, with its encrypted file fallback for headless
// machines) and HashiCorp Vault KV v2. A map-backed Memory store serves
// the test suites.
//
// Backend choice lives in a small TOML profile at
// ~/.config/envkeep/profile.toml, created on first run with a fresh
// installation id. ENVKEEP_KEYRING_BACKEND, ENVKEEP_KEYRING_PASSWORD,
// and ENVKEEP_CREDENTIALS_DIR override the profile for one-off runs and
// CI.
//
// Encryption at rest is the backend's job, not this package's. Values
// cross the interface as plain strings and must never be logged.
package store
