package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/engine"
	"github.com/fennwick/envkeep/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"list"},
	Short:   "Show which secrets are stored and which projects are mapped",
	Long: `Lists every secret defined in the config with whether the credential
store currently holds a value for it, plus every mapped project
directory with whether it exists. Stored values are shown masked, never
in full.

Status is read-only: it writes nothing to the store, the filesystem, or
the export log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Checking secrets...", verbose)
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = configErrorMessage(err)
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			spinner.FinalMSG = storeErrorMessage(err)
			return err
		}

		report, err := engine.Status(context.Background(), cfg, st)
		if err != nil {
			return Logger.ErrorfAndReturn("status failed: %v", err)
		}

		spinner.FinalMSG = statusSummary(report)
		return nil
	},
}

// statusSummary renders a StatusReport as an aligned listing.
func statusSummary(report *engine.StatusReport) string {
	var b strings.Builder

	if report.Missing == 0 {
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" All %d secret(s) stored\n", report.Present))
	} else {
		b.WriteString(ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d of %d secret(s) stored\n",
			report.Present, report.Present+report.Missing))
	}

	nameWidth := 0
	for _, s := range report.Secrets {
		if len(s.EnvVar) > nameWidth {
			nameWidth = len(s.EnvVar)
		}
	}
	for _, s := range report.Secrets {
		glyph := ui.Success.Sprint("✓")
		detail := s.Preview
		if !s.Present {
			glyph = ui.Error.Sprint("✗")
			detail = "not stored"
		}
		b.WriteString(fmt.Sprintf("  %s %-*s  %-10s %s\n",
			glyph, nameWidth, s.EnvVar, detail, ui.Muted.Sprint(s.Description)))
	}

	if len(report.Projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, p := range report.Projects {
			glyph := ui.Success.Sprint("✓")
			note := fmt.Sprintf("%d variable(s)", p.Defined)
			if p.Defined < p.Wanted {
				note += fmt.Sprintf(", %d unknown", p.Wanted-p.Defined)
			}
			if !p.Exists {
				glyph = ui.Error.Sprint("✗")
				note = "directory missing, export will skip it"
			}
			b.WriteString("  " + glyph + " " + ui.Path.Sprint(p.Path) + " " + ui.Muted.Sprint(note) + "\n")
		}
	}

	if report.Missing > 0 {
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep store <name>") + " to add missing secrets")
	}
	return b.String()
}
