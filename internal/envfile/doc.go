// Package envfile reads and writes plaintext env files in the dumbest
// format that works: one KEY=VALUE per line, # comments, no quoting.
//
// Values are written verbatim, so a value containing spaces or = signs
// survives a read/write round trip unchanged. Files written by this
// package start with a marker header so generated files can be told
// apart from hand-maintained ones. Writes go through a temp file and
// rename, so readers never observe a half-written file.
package envfile
