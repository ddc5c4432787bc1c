package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initForce = false
}

// starterConfig is written by envkeep init. It parses as-is: one sample
// secret keeps the config valid so export and status work immediately.
const starterConfig = `# envkeep secrets config
#
# Three sections. Lines starting with # and blank lines are ignored.

[settings]
# service  = secrets-manager
# env_file = ~/.env
# log_file = /tmp/secrets-manager-export.log

[secrets]
# account-name | ENV_VAR | description
openai-api-key | OPENAI_API_KEY | OpenAI API key
# github-token | GITHUB_TOKEN | GitHub personal access token

[projects]
# path | comma,separated,ENV_VARS
# ~/code/my-api | OPENAI_API_KEY,GITHUB_TOKEN
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter secrets config",
	Long: `Writes a commented starter config to the default location (or the
--config path). Existing configs are not overwritten unless --force is
given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Creating starter config...", verbose)
		defer cleanup()

		path := configFlag
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return Logger.ErrorfAndReturn("could not determine config path: %v", err)
			}
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Config already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("envkeep init --force") + " to overwrite it"
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Logger.ErrorfAndReturn("could not create config directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
			return Logger.ErrorfAndReturn("could not write config: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created starter config at " + ui.Path.Sprint(path) + "\n" +
			ui.Info.Sprint("→") + " Edit it, then run " + ui.Code.Sprint("envkeep store <name>") + " to add secrets"
		return nil
	},
}
