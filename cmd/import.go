package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/engine"
	"github.com/fennwick/envkeep/internal/ui"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report what would be imported without writing to the store")
}

// resetImportCommandState resets the import command's global state for testing.
func resetImportCommandState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the credential store from existing env files",
	Long: `Scans the global env file and every mapped project's .env for variables
defined in the config and stores the values the store does not already
hold. Existing store values always win: import never overwrites.

Variables not defined in the config are ignored, as are empty values.
Import writes no files; run 'envkeep export' afterwards to regenerate
them.

Examples:
  # Pull existing env files into the store
  envkeep import

  # Preview without writing to the store
  envkeep import --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Importing from env files...", verbose)
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

		report, err := engine.Import(context.Background(), cfg, st, engine.ImportOptions{DryRun: importDryRun})
		if err != nil {
			return Logger.ErrorfAndReturn("import failed: %v", err)
		}

		spinner.FinalMSG = importSummary(report)
		return nil
	},
}

// importSummary renders an ImportReport for the terminal. Reports carry
// counts and paths only, never values.
func importSummary(report *engine.ImportReport) string {
	if len(report.Sources) == 0 {
		return ui.Warning.Sprint("⚠") + " No env files found to import from"
	}

	imported := "Imported"
	if report.DryRun {
		imported = "Would import"
	}

	var b strings.Builder
	b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" %s %d value(s) from %d file(s)\n",
		imported, report.Imported, len(report.Sources)))
	for _, source := range report.Sources {
		b.WriteString("  " + ui.Path.Sprint(source) + "\n")
	}

	var notes []string
	if report.Skipped > 0 {
		notes = append(notes, fmt.Sprintf("%d already stored", report.Skipped))
	}
	if report.Empty > 0 {
		notes = append(notes, fmt.Sprintf("%d empty", report.Empty))
	}
	if report.Unrecognized > 0 {
		notes = append(notes, fmt.Sprintf("%d not in config", report.Unrecognized))
	}
	if report.Failed > 0 {
		notes = append(notes, fmt.Sprintf("%d failed", report.Failed))
	}
	if len(notes) > 0 {
		b.WriteString("  " + ui.Muted.Sprint(strings.Join(notes, ", ")) + "\n")
	}

	if report.Imported > 0 && !report.DryRun {
		b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep export") + " to regenerate env files")
	}
	return b.String()
}
