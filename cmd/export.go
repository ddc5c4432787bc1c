package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/engine"
	"github.com/fennwick/envkeep/internal/ui"
)

var exportDryRun bool

func init() {
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "resolve secrets and report without writing files")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportDryRun = false
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored secrets to the global env file and project .env files",
	Long: `Reads every secret defined in the config from the credential store and
writes the resolved values to plaintext env files: the global file
first, then one .env per mapped project directory.

Secrets with no stored value are left out of every file. Projects whose
directory does not exist are skipped. Files are written with mode 0600
and replaced atomically, so a failed write leaves the previous file
untouched.

Examples:
  # Write all env files
  envkeep export

  # See what would be written without touching anything
  envkeep export --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting secrets...", verbose)
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

		report, err := engine.Export(context.Background(), cfg, st, engine.ExportOptions{DryRun: exportDryRun})
		if err != nil {
			return Logger.ErrorfAndReturn("export failed: %v", err)
		}
		Logger.Infof("Export run %s finished", report.RunID)

		spinner.FinalMSG = exportSummary(report)
		if report.Failed > 0 {
			return fmt.Errorf("%d destination(s) could not be written", report.Failed)
		}
		return nil
	},
}

// exportSummary renders an ExportReport for the terminal. Secret values
// never appear in a report, so everything here is safe to print.
func exportSummary(report *engine.ExportReport) string {
	wrote := "Wrote"
	if report.DryRun {
		wrote = "Would write"
	}

	var b strings.Builder
	switch {
	case report.Failed > 0:
		b.WriteString(ui.Error.Sprint("✗") + fmt.Sprintf(" Export finished with %d failed destination(s)\n", report.Failed))
	case report.DryRun:
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" Would export %d secret(s)\n", report.Resolved))
	default:
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d secret(s)\n", report.Resolved))
	}

	b.WriteString(destinationLine(report.Global, wrote))
	for _, dest := range report.Projects {
		b.WriteString(destinationLine(dest, wrote))
	}

	if len(report.Missing) > 0 {
		b.WriteString(ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d secret(s) had no stored value: %s\n",
			len(report.Missing), strings.Join(report.Missing, ", ")))
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep store <name>") + " to set them")
	}
	return b.String()
}

func destinationLine(dest engine.Destination, wrote string) string {
	switch dest.Outcome {
	case engine.OutcomeSkipped:
		return "  " + ui.Muted.Sprint("skipped") + " " + ui.Path.Sprint(dest.Project) + " (directory missing)\n"
	case engine.OutcomeFailed:
		return "  " + ui.Error.Sprint("failed") + "  " + ui.Path.Sprint(dest.Path) + ": " + dest.Err.Error() + "\n"
	default:
		return fmt.Sprintf("  %s %s (%d variable(s))\n", strings.ToLower(wrote), ui.Path.Sprint(dest.Path), dest.Pairs)
	}
}
