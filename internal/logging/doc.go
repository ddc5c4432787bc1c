// Package logger provides leveled console logging for envkeep commands.
//
// The logger is a small value type configured from the --verbose and
// --debug flags. Output carries semantic color prefixes; secret values
// must never be passed to any log method.
//
// # Verbosity
//
//   - default: errors and critical warnings only
//   - --verbose: adds info and warning messages
//   - --debug: adds debug detail
//
// # Usage
//
// Commands create a logger in their PersistentPreRun and share it with
// helper functions:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("resolved %d secrets", n)
package logger
