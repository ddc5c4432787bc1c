package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/fennwick/envkeep/internal/logging"
)

var (
	verbose    bool
	debug      bool
	configFlag string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "envkeep",
		Short: "Keep secrets in your credential store, not in dotfiles",
		Long: `envkeep keeps named secrets in an encrypted credential store (the OS
keyring or HashiCorp Vault) and projects them into plaintext .env files
on demand.

A single declarative config lists the secrets you manage and the project
directories that want them. Export writes the env files, import seeds
the store from env files you already have, and status shows where the
two disagree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing envkeep with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the secrets config (default $ENVKEEP_CONFIG, then ~/.config/envkeep/secrets.conf)")

	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(storeCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(cleanCmd)
	RootCmd.AddCommand(menuCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configFlag = ""
	resetExportCommandState()
	resetImportCommandState()
	resetStoreCommandState()
	resetInitCommandState()
	resetCleanCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState clears the parsed-flag state so one Execute call's
// arguments do not leak into the next during tests.
func resetCobraFlagState() {
	RootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range RootCmd.Commands() {
		sub.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
