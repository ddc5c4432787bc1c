// Package oplog records synchronization activity in a plain-text file.
//
// Every export run appends three entries: a start marker with the run
// id, the count of secrets read from the store, and a completion marker
// with the destination outcomes. The log answers "when did the last
// export run and what did it touch" without anyone having to re-run it.
//
// # Log Format
//
// One entry per line:
//
//	[2006-01-02 15:04:05] export run 3f1c... started
//
// # Failure Handling
//
// Logging is best-effort. If the log file cannot be opened or written
// (permissions, read-only filesystem), entries are dropped and the
// operation continues without error.
//
// # Secrecy
//
// Entries never contain secret values. Callers log counts, file paths,
// and run markers only.
package oplog
