package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/envfile"
	"github.com/fennwick/envkeep/internal/store"
)

// ImportOptions configures an import run.
type ImportOptions struct {
	// DryRun counts what would happen without writing to the store.
	DryRun bool
}

// ImportReport contains the outcome of an import run. It carries counts
// and source paths, never values.
type ImportReport struct {
	// Sources lists the env files scanned, in scan order.
	Sources []string

	// DryRun records whether the store was actually written.
	DryRun bool

	// Imported is the number of pairs written to the store.
	Imported int

	// Skipped counts pairs whose account already held a non-empty value.
	Skipped int

	// Empty counts pairs dropped for having an empty value.
	Empty int

	// Unrecognized counts pairs whose key matches no definition.
	Unrecognized int

	// Failed counts pairs whose store write failed.
	Failed int
}

// Import seeds the store from existing env files: the global file first,
// then each project's .env in config order, deduplicated by path.
//
// A pair is imported only when its key matches a defined env var and the
// store does not already hold a non-empty value for the matching
// account. The store always wins, so import never overwrites; among
// several files carrying the same variable the earliest-scanned
// non-empty value is the one imported. Import never writes files.
func Import(ctx context.Context, cfg *config.Config, st store.Store, opts ImportOptions) (*ImportReport, error) {
	report := &ImportReport{DryRun: opts.DryRun}

	// Dry runs track would-be imports here so that the earliest source
	// still wins when several files carry the same variable.
	virtual := make(map[string]bool)

	for _, path := range importSources(cfg) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pairs, err := envfile.ReadFile(path)
		if err != nil {
			continue
		}
		report.Sources = append(report.Sources, path)

		for _, pair := range pairs {
			if pair.Value == "" {
				report.Empty++
				continue
			}
			def, ok := cfg.DefinitionForEnvVar(pair.Key)
			if !ok {
				report.Unrecognized++
				continue
			}
			if virtual[def.Account] || storeHolds(ctx, st, def.Account) {
				report.Skipped++
				continue
			}
			if opts.DryRun {
				virtual[def.Account] = true
				report.Imported++
				continue
			}
			if err := st.Set(ctx, def.Account, pair.Value); err != nil {
				report.Failed++
				continue
			}
			report.Imported++
		}
	}
	return report, nil
}

// importSources returns the env files to scan, in scan order. Only
// files that exist make the list.
func importSources(cfg *config.Config) []string {
	candidates := make([]string, 0, len(cfg.Projects)+1)
	candidates = append(candidates, cfg.Settings.EnvFile)
	for _, project := range cfg.Projects {
		candidates = append(candidates, filepath.Join(project.Path, ".env"))
	}

	seen := make(map[string]bool, len(candidates))
	var sources []string
	for _, path := range candidates {
		cleaned := filepath.Clean(path)
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		if info, err := os.Stat(cleaned); err != nil || info.IsDir() {
			continue
		}
		sources = append(sources, cleaned)
	}
	return sources
}

func storeHolds(ctx context.Context, st store.Store, account string) bool {
	value, err := st.Get(ctx, account)
	return err == nil && value != ""
}
