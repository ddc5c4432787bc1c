package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/envfile"
	kerrors "github.com/fennwick/envkeep/internal/errors"
	"github.com/fennwick/envkeep/internal/ui"
)

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "list what would be removed without deleting anything")
}

// resetCleanCommandState resets the clean command's global state for testing.
func resetCleanCommandState() {
	cleanDryRun = false
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the env files a previous export generated",
	Long: `Deletes the global env file and every mapped project's .env, but only
files carrying the generated-file header. Hand-written env files are
refused and left alone. The credential store is not touched.

Examples:
  # Remove generated env files
  envkeep clean

  # See what would be removed
  envkeep clean --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting clean command")
		spinner, cleanup := startSpinner("Cleaning generated env files...", verbose)
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = configErrorMessage(err)
			return err
		}

		var removed, refused []string
		var failed int
		for _, path := range cleanTargets(cfg) {
			err := removeGenerated(path, cleanDryRun)
			switch {
			case err == nil:
				removed = append(removed, path)
			case os.IsNotExist(err):
				// Nothing to clean there.
			case errors.Is(err, kerrors.ErrNotGenerated):
				refused = append(refused, path)
			default:
				Logger.WarnfAlways("could not remove %s: %v", path, err)
				failed++
			}
		}

		spinner.FinalMSG = cleanSummary(removed, refused, cleanDryRun)
		if failed > 0 {
			return fmt.Errorf("%d file(s) could not be removed", failed)
		}
		return nil
	},
}

// cleanTargets lists every path an export could have written, existing
// or not, deduplicated.
func cleanTargets(cfg *config.Config) []string {
	targets := []string{filepath.Clean(cfg.Settings.EnvFile)}
	seen := map[string]bool{targets[0]: true}
	for _, project := range cfg.Projects {
		path := filepath.Clean(filepath.Join(project.Path, ".env"))
		if !seen[path] {
			seen[path] = true
			targets = append(targets, path)
		}
	}
	return targets
}

// removeGenerated deletes the file at path only if it carries the
// generated-file header. ErrNotGenerated (wrapped) marks a hand-written
// file that was left alone.
func removeGenerated(path string, dryRun bool) error {
	generated, err := envfile.IsGenerated(path)
	if err != nil {
		return err
	}
	if !generated {
		return fmt.Errorf("%w: %s", kerrors.ErrNotGenerated, path)
	}
	if dryRun {
		return nil
	}
	return os.Remove(path)
}

func cleanSummary(removed, refused []string, dryRun bool) string {
	var b strings.Builder

	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	if len(removed) == 0 {
		b.WriteString(ui.Info.Sprint("→") + " No generated env files found\n")
	} else {
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" %s %d generated file(s)\n", verb, len(removed)))
		for _, path := range removed {
			b.WriteString("  " + ui.Path.Sprint(path) + "\n")
		}
	}

	if len(refused) > 0 {
		b.WriteString(ui.Warning.Sprint("⚠") + " Left alone (no generated-file header):\n")
		for _, path := range refused {
			b.WriteString("  " + ui.Path.Sprint(path) + "\n")
		}
	}
	return b.String()
}
