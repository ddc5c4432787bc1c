package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/fennwick/envkeep/internal/errors"
	"github.com/fennwick/envkeep/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a secret from the credential store",
	Long: `Deletes the stored value for one of the configured secrets. The name
may be either the account name or the env var name from the config.

Removing a secret that is not stored is not an error. Generated env
files keep the old value until the next export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		spinner, cleanup := startSpinner("Removing secret...", verbose)
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			spinner.FinalMSG = configErrorMessage(err)
			return err
		}
		def, ok := cfg.Resolve(args[0])
		if !ok {
			spinner.FinalMSG = unknownNameMessage(args[0])
			return fmt.Errorf("%w: %s", kerrors.ErrUnknownSecretName, args[0])
		}

		st, err := openStore(cfg)
		if err != nil {
			spinner.FinalMSG = storeErrorMessage(err)
			return err
		}

		ctx := context.Background()
		_, getErr := st.Get(ctx, def.Account)
		hadValue := getErr == nil

		if err := st.Delete(ctx, def.Account); err != nil {
			return Logger.ErrorfAndReturn("failed to remove %s: %v", def.Account, err)
		}

		if !hadValue {
			spinner.FinalMSG = ui.Info.Sprint("→") + " Nothing stored for " + ui.Highlight.Sprint(def.Account)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(def.Account) + " from the store\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep export") + " to update env files"
		return nil
	},
}
