// Package engine implements the synchronization operations between the
// credential store and plaintext env files.
//
// Export projects stored values into the global env file and each
// mapped project's .env. Import walks those same files and seeds the
// store from them, never overwriting. Status reconciles without
// touching anything.
//
// Operations are package functions over an immutable config value and a
// store.Store; the engine holds no state between calls. Failures inside
// a batch degrade rather than abort: an unreadable secret exports as
// absent, an unwritable destination is reported as failed while the
// rest of the run proceeds. Reports carry counts, names, and paths
// only, never secret values.
//
// The engine assumes a single user and a single process. There is no
// file locking and no store-level transaction, so concurrent processes
// racing the same config can interleave writes.
package engine
