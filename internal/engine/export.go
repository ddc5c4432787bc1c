package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/envfile"
	"github.com/fennwick/envkeep/internal/oplog"
	"github.com/fennwick/envkeep/internal/store"
)

// Outcome classifies what happened to one destination file.
type Outcome string

const (
	// OutcomeWritten means the destination was fully written, or would
	// have been in a dry run.
	OutcomeWritten Outcome = "written"

	// OutcomeSkipped means the project directory does not exist.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the destination could not be written. The
	// previous file, if any, is left untouched.
	OutcomeFailed Outcome = "failed"
)

// Destination is the per-file slice of an ExportReport.
type Destination struct {
	// Path is the destination env file.
	Path string

	// Project is the mapped project directory, or "" for the global file.
	Project string

	// Outcome classifies the write.
	Outcome Outcome

	// Pairs is how many variables the destination carries.
	Pairs int

	// Err holds the write failure when Outcome is OutcomeFailed.
	Err error
}

// ExportOptions configures an export run.
type ExportOptions struct {
	// DryRun resolves and reports without writing files or log entries.
	DryRun bool
}

// ExportReport contains the outcome of an export run. It carries counts,
// variable names, and paths, never secret values.
type ExportReport struct {
	// RunID correlates the run's log entries.
	RunID string

	// DryRun records whether anything was actually written.
	DryRun bool

	// Resolved is the number of definitions whose store value was non-empty.
	Resolved int

	// Missing lists env var names excluded because their value was
	// absent or empty.
	Missing []string

	// Global is the outcome for the global env file.
	Global Destination

	// Projects holds one outcome per project mapping, in config order.
	Projects []Destination

	// Written, Skipped, and Failed aggregate the outcomes above, the
	// global file included.
	Written int
	Skipped int
	Failed  int
}

// Export resolves every defined secret from the store and projects the
// resolved values into plaintext env files: the global file first, then
// one .env per mapped project directory that exists.
//
// Definitions whose value is absent, empty, or unreadable are excluded
// from every file and listed in the report as missing. A project whose
// directory is gone is skipped; a destination that cannot be written is
// reported as failed. Neither stops the run, and a failed destination is
// left exactly as the previous run wrote it.
//
// Three log entries are appended per run: start, secrets-read count, and
// completion. A dry run writes nothing, log included.
func Export(ctx context.Context, cfg *config.Config, st store.Store, opts ExportOptions) (*ExportReport, error) {
	report := &ExportReport{RunID: uuid.New().String(), DryRun: opts.DryRun}

	log := oplog.New(cfg.Settings.LogFile)
	if opts.DryRun {
		log = oplog.New("")
	}
	log.Printf("export run %s started", report.RunID)

	resolved := make(map[string]string, len(cfg.Secrets))
	var pairs []envfile.Pair
	for _, def := range cfg.Secrets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := st.Get(ctx, def.Account)
		if err != nil || value == "" {
			// Absent, empty, and unreadable are the same observable state.
			report.Missing = append(report.Missing, def.EnvVar)
			continue
		}
		resolved[def.EnvVar] = value
		pairs = append(pairs, envfile.Pair{Key: def.EnvVar, Value: value})
	}
	report.Resolved = len(pairs)
	log.Printf("export run %s read %d of %d secrets from the store", report.RunID, report.Resolved, len(cfg.Secrets))

	report.Global = writeDestination(cfg.Settings.EnvFile, "", pairs, opts.DryRun)
	report.tally(report.Global)

	for _, project := range cfg.Projects {
		dest := exportProject(cfg, project, resolved, opts.DryRun)
		report.Projects = append(report.Projects, dest)
		report.tally(dest)
	}

	log.Printf("export run %s completed: %d written, %d skipped, %d failed",
		report.RunID, report.Written, report.Skipped, report.Failed)
	return report, nil
}

func (r *ExportReport) tally(dest Destination) {
	switch dest.Outcome {
	case OutcomeWritten:
		r.Written++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// exportProject writes the project's subset file, or skips it when the
// project directory does not exist at export time.
func exportProject(cfg *config.Config, project config.ProjectMapping, resolved map[string]string, dryRun bool) Destination {
	path := filepath.Join(project.Path, ".env")
	info, err := os.Stat(project.Path)
	if err != nil || !info.IsDir() {
		return Destination{Path: path, Project: project.Path, Outcome: OutcomeSkipped}
	}
	return writeDestination(path, project.Path, projectPairs(cfg, project, resolved), dryRun)
}

// projectPairs selects the resolved pairs the project wants, keeping
// definition order. Wanted names that match no definition are inert.
func projectPairs(cfg *config.Config, project config.ProjectMapping, resolved map[string]string) []envfile.Pair {
	wanted := make(map[string]bool, len(project.Vars))
	for _, name := range project.Vars {
		wanted[name] = true
	}
	var pairs []envfile.Pair
	for _, def := range cfg.Secrets {
		if !wanted[def.EnvVar] {
			continue
		}
		value, ok := resolved[def.EnvVar]
		if !ok {
			continue
		}
		pairs = append(pairs, envfile.Pair{Key: def.EnvVar, Value: value})
	}
	return pairs
}

func writeDestination(path, project string, pairs []envfile.Pair, dryRun bool) Destination {
	dest := Destination{Path: path, Project: project, Pairs: len(pairs), Outcome: OutcomeWritten}
	if dryRun {
		return dest
	}
	if err := envfile.WriteFile(path, pairs); err != nil {
		dest.Outcome = OutcomeFailed
		dest.Err = err
	}
	return dest
}
