package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/config"
	kerrors "github.com/fennwick/envkeep/internal/errors"
	"github.com/fennwick/envkeep/internal/ui"
	"github.com/fennwick/envkeep/internal/utils"
)

var storeValue string

func init() {
	storeCmd.Flags().StringVar(&storeValue, "value", "", "secret value (read from stdin or prompted for when omitted)")
}

// resetStoreCommandState resets the store command's global state for testing.
func resetStoreCommandState() {
	storeValue = ""
}

var storeCmd = &cobra.Command{
	Use:   "store <name>",
	Short: "Store a secret value in the credential store",
	Long: `Stores a value under one of the configured secrets. The name may be
either the account name or the env var name from the config.

The value comes from --value, from piped stdin, or from a no-echo
terminal prompt, in that order. Empty values are refused; use
'envkeep remove' to delete a secret.

Examples:
  # Prompted, nothing echoed
  envkeep store openai-api-key

  # From a pipe
  pass show openai | envkeep store OPENAI_API_KEY`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting store command")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(configErrorMessage(err))
			return err
		}

		def, ok := cfg.Resolve(args[0])
		if !ok {
			fmt.Println(unknownNameMessage(args[0]))
			return fmt.Errorf("%w: %s", kerrors.ErrUnknownSecretName, args[0])
		}

		// The value is collected before the spinner starts so the
		// prompt is not fighting the spinner for the terminal.
		value, err := resolveSecretValue(def)
		if err != nil {
			return Logger.ErrorfAndReturn("could not read secret value: %v", err)
		}
		if value == "" {
			fmt.Println(ui.Error.Sprint("✗") + " Refusing to store an empty value\n" +
				ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("envkeep remove "+def.Account) + " to delete a secret")
			return fmt.Errorf("%w: %s", kerrors.ErrEmptySecretValue, def.Account)
		}

		spinner, cleanup := startSpinner("Storing secret...", verbose)
		defer cleanup()

		st, err := openStore(cfg)
		if err != nil {
			spinner.FinalMSG = storeErrorMessage(err)
			return err
		}
		if err := st.Set(context.Background(), def.Account, value); err != nil {
			return Logger.ErrorfAndReturn("failed to store %s: %v", def.Account, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Stored " + ui.Highlight.Sprint(def.Account) +
			" (" + def.EnvVar + ")\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep export") + " to update env files"
		return nil
	},
}

// resolveSecretValue picks the value source: --value, piped stdin, then
// an interactive no-echo prompt. Surrounding whitespace is trimmed so a
// trailing newline from echo does not end up inside the secret.
func resolveSecretValue(def config.SecretDefinition) (string, error) {
	if storeValue != "" {
		return strings.TrimSpace(storeValue), nil
	}
	if !utils.IsTerminal() {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	value, err := utils.ReadPassphrase(fmt.Sprintf("Value for %s: ", def.Account))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(value)), nil
}

// unknownNameMessage explains a name that matches neither an account nor
// an env var.
func unknownNameMessage(name string) string {
	return ui.Error.Sprint("✗") + " " + ui.Highlight.Sprint(name) + " is not a configured secret\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep status") + " to list configured names"
}
