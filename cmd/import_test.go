package cmd

import (
	"strings"
	"testing"

	"github.com/fennwick/envkeep/internal/engine"
)

func TestImportSummaryNoSources(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := importSummary(&engine.ImportReport{})
	if !strings.Contains(out, "No env files found to import from") {
		t.Errorf("Expected no-sources message, got:\n%s", out)
	}
}

func TestImportSummaryCountsAndHint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &engine.ImportReport{
		Sources:      []string{"/home/dev/.env", "/home/dev/api/.env"},
		Imported:     2,
		Skipped:      1,
		Empty:        1,
		Unrecognized: 3,
	}

	out := importSummary(report)
	for _, want := range []string{
		"✓ Imported 2 value(s) from 2 file(s)",
		"/home/dev/.env",
		"/home/dev/api/.env",
		"1 already stored, 1 empty, 3 not in config",
		"envkeep export",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestImportSummaryDryRunOmitsExportHint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &engine.ImportReport{
		Sources:  []string{"/home/dev/.env"},
		DryRun:   true,
		Imported: 2,
	}

	out := importSummary(report)
	if !strings.Contains(out, "✓ Would import 2 value(s) from 1 file(s)") {
		t.Errorf("Expected dry-run headline, got:\n%s", out)
	}
	if strings.Contains(out, "envkeep export") {
		t.Errorf("Expected no export hint in a dry-run summary, got:\n%s", out)
	}
}
