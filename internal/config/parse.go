package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/fennwick/envkeep/internal/errors"
)

type section int

const (
	sectionNone section = iota
	sectionSettings
	sectionSecrets
	sectionProjects
	sectionUnknown
)

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the three-section config format.
//
// Section markers are bracketed lines compared literally (case-sensitive):
// [settings], [secrets], [projects]. Any other bracketed line opens an
// unknown section whose body is discarded, as are lines before the first
// marker. Blank lines and #-comments are ignored everywhere.
//
// The parser is tolerant: malformed secret and project lines are dropped
// silently and parsing continues. The only fatal outcomes are duplicate
// account names or env vars and a config that defines zero secrets.
func Parse(r io.Reader) (*Config, error) {
	var (
		settings Settings
		secrets  []SecretDefinition
		projects []ProjectMapping
	)

	current := sectionNone
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch line[1 : len(line)-1] {
			case "settings":
				current = sectionSettings
			case "secrets":
				current = sectionSecrets
			case "projects":
				current = sectionProjects
			default:
				current = sectionUnknown
			}
			continue
		}

		switch current {
		case sectionSettings:
			applySetting(&settings, line)
		case sectionSecrets:
			if def, ok := parseSecretLine(line); ok {
				secrets = append(secrets, def)
			}
		case sectionProjects:
			if mapping, ok := parseProjectLine(line); ok {
				projects = append(projects, mapping)
			}
		default:
			// Unknown section or preamble: discarded for forward compatibility.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return New(settings, secrets, projects)
}

// applySetting handles one `key = value` line. Unrecognized keys, lines
// without =, and empty values are all ignored so the defaults hold.
func applySetting(s *Settings, line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	switch key {
	case "service":
		s.Service = value
	case "env_file":
		s.EnvFile = value
	case "log_file":
		s.LogFile = value
	}
}

// parseSecretLine handles `account | ENV_VAR [| description]`. Lines
// missing either of the first two fields are dropped; a missing or empty
// description defaults to the env var name; fields past the third are
// ignored.
func parseSecretLine(line string) (SecretDefinition, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return SecretDefinition{}, false
	}
	account := strings.TrimSpace(fields[0])
	envVar := strings.TrimSpace(fields[1])
	if account == "" || envVar == "" {
		return SecretDefinition{}, false
	}
	description := envVar
	if len(fields) >= 3 {
		if d := strings.TrimSpace(fields[2]); d != "" {
			description = d
		}
	}
	return SecretDefinition{Account: account, EnvVar: envVar, Description: description}, true
}

// parseProjectLine handles `path | ENV_VAR1, ENV_VAR2, ...`. The var list
// is everything after the first pipe, split on commas with empties dropped.
// Lines without a path or without at least one var are dropped.
func parseProjectLine(line string) (ProjectMapping, bool) {
	path, list, ok := strings.Cut(line, "|")
	if !ok {
		return ProjectMapping{}, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ProjectMapping{}, false
	}

	var vars []string
	for _, entry := range strings.Split(list, ",") {
		if v := strings.TrimSpace(entry); v != "" {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return ProjectMapping{}, false
	}
	return ProjectMapping{Path: path, Vars: vars}, true
}
