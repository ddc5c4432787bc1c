package engine

import (
	"context"
	"os"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/store"
)

// SecretStatus describes one definition's store state.
type SecretStatus struct {
	Account     string
	EnvVar      string
	Description string

	// Present reports whether the store holds a non-empty value.
	Present bool

	// Preview is a masked hint of the stored value, "" when absent.
	// Never the raw value.
	Preview string
}

// ProjectStatus describes one mapping's filesystem state.
type ProjectStatus struct {
	Path string

	// Exists reports whether the project directory is present, which is
	// what decides skip-vs-write at export time.
	Exists bool

	// Wanted is how many env vars the mapping lists; Defined is the
	// subset that matches a definition.
	Wanted  int
	Defined int
}

// StatusReport reconciles the config against the store and filesystem.
type StatusReport struct {
	Secrets  []SecretStatus
	Projects []ProjectStatus

	// Present and Missing count the secrets above.
	Present int
	Missing int
}

// Status reports, per definition, whether the store holds a non-empty
// value, and per project mapping, whether its directory exists. It is
// read-only: nothing is written to the store, the filesystem, or the
// operation log.
func Status(ctx context.Context, cfg *config.Config, st store.Store) (*StatusReport, error) {
	report := &StatusReport{}

	for _, def := range cfg.Secrets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status := SecretStatus{Account: def.Account, EnvVar: def.EnvVar, Description: def.Description}
		if value, err := st.Get(ctx, def.Account); err == nil && value != "" {
			status.Present = true
			status.Preview = maskPreview(value)
		}
		if status.Present {
			report.Present++
		} else {
			report.Missing++
		}
		report.Secrets = append(report.Secrets, status)
	}

	for _, project := range cfg.Projects {
		status := ProjectStatus{Path: project.Path, Wanted: len(project.Vars)}
		if info, err := os.Stat(project.Path); err == nil && info.IsDir() {
			status.Exists = true
		}
		for _, name := range project.Vars {
			if _, ok := cfg.DefinitionForEnvVar(name); ok {
				status.Defined++
			}
		}
		report.Projects = append(report.Projects, status)
	}
	return report, nil
}

// maskPreview hints at a stored value without revealing it. Short
// values mask entirely; longer ones keep the first and last two
// characters.
func maskPreview(value string) string {
	runes := []rune(value)
	if len(runes) < 8 {
		return "****"
	}
	return string(runes[:2]) + "****" + string(runes[len(runes)-2:])
}
