// Package config parses envkeep's declarative config into an immutable
// in-memory model.
//
// The config file has three sections:
//
//	[settings]
//	service   = secrets-manager
//	env_file  = ~/.env
//	log_file  = /tmp/secrets-manager-export.log
//
//	[secrets]
//	github-token | GITHUB_TOKEN | GitHub personal access token
//	openai-key   | OPENAI_API_KEY
//
//	[projects]
//	~/code/backend | GITHUB_TOKEN, OPENAI_API_KEY
//
// Section markers are case-sensitive; unrecognized bracketed sections are
// skipped whole, so newer configs degrade gracefully on older binaries.
// Parsing is deliberately tolerant: malformed lines are dropped and the
// rest of the file is still used. Two conditions are fatal: duplicate
// account names or env vars (rejected rather than last-wins), and a config
// that ends up with zero secret definitions.
//
// A Config is immutable after Load and is rebuilt from the file on every
// invocation; engine operations receive it as an explicit value.
package config
