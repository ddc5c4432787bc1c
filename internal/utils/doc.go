// Package utils holds small input helpers shared by the commands:
// piped-stdin reading and no-echo terminal prompting.
package utils
