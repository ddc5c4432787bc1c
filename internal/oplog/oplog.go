package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timeLayout is the timestamp format inside each entry's brackets.
const timeLayout = "2006-01-02 15:04:05"

// Log appends operation entries to a plain-text file, one per line:
//
//	[2006-01-02 15:04:05] message
//
// Writes are best effort. A log that cannot be opened or written is
// silently skipped; synchronization must not fail because its log did.
// Entries carry counts, paths, and run markers, never secret values.
type Log struct {
	path string
}

// New returns a Log appending to path. An empty path disables logging;
// the returned Log swallows all writes.
func New(path string) *Log {
	return &Log{path: path}
}

// Enabled reports whether entries are being written anywhere.
func (l *Log) Enabled() bool {
	return l != nil && l.path != ""
}

// Path returns the destination file, or "" when disabled.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Printf appends one timestamped entry. Failures are ignored.
func (l *Log) Printf(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format(timeLayout), fmt.Sprintf(format, args...))
	_, _ = f.WriteString(line)
}

// Entry is one parsed log line.
type Entry struct {
	Timestamp string // Bracketed timestamp text, "2006-01-02 15:04:05".
	Message   string
}

// Read parses all entries from the log at path. A missing file yields no
// entries and no error. Lines that do not match the entry format are
// skipped.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseEntries(string(data)), nil
}

func parseEntries(data string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(data, "\n") {
		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseLine(line string) (Entry, bool) {
	if !strings.HasPrefix(line, "[") {
		return Entry{}, false
	}
	ts, msg, found := strings.Cut(line[1:], "] ")
	if !found {
		return Entry{}, false
	}
	if _, err := time.Parse(timeLayout, ts); err != nil {
		return Entry{}, false
	}
	return Entry{Timestamp: ts, Message: msg}, true
}
