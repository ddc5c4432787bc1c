package envfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Marker is the first line of every file this package writes. Downstream
// tooling (and envkeep clean) uses it to tell generated files from
// hand-written ones.
const Marker = "# Generated by envkeep. DO NOT EDIT."

const advice = "# Changes are overwritten on the next export; edit the envkeep config instead."

// Pair is one KEY=VALUE entry. Order is significant and preserved.
type Pair struct {
	Key   string
	Value string
}

// Parse decodes the line-oriented env format. Blank lines and #-comments
// are skipped. Each remaining line splits on the first = only, so values
// may contain = characters; key and value are trimmed of surrounding
// whitespace. A line with no = (or nothing after it) yields an empty
// value, not an error. There is no quoting, escaping, or multi-line
// value support.
func Parse(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found {
			pairs = append(pairs, Pair{Key: key})
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return pairs, nil
}

// ReadFile parses the env file at path.
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// WriteFile writes pairs to path in caller order, preceded by the
// generated-file header. The parent directory is created if needed. The
// file is written to a temp file in the destination directory and renamed
// into place, so the destination is either fully replaced or left
// untouched; it is never partially written. Mode is owner read/write only.
func WriteFile(path string, pairs []Pair) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	buf.WriteString(Marker + "\n")
	buf.WriteString("# Exported at " + time.Now().UTC().Format(time.RFC3339) + "\n")
	buf.WriteString(advice + "\n")
	buf.WriteString("\n")
	for _, p := range pairs {
		buf.WriteString(p.Key + "=" + p.Value + "\n")
	}

	tmp, err := os.CreateTemp(dir, ".env.*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// HasGeneratedHeader reports whether data starts with the generated-file
// marker.
func HasGeneratedHeader(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Marker))
}

// IsGenerated reports whether the file at path carries the generated-file
// marker. The error is non-nil when the file cannot be read, including
// when it does not exist.
func IsGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(Marker))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return HasGeneratedHeader(head[:n]), nil
}
