package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/fennwick/envkeep/internal/config"
	"github.com/fennwick/envkeep/internal/engine"
	"github.com/fennwick/envkeep/internal/store"
	"github.com/fennwick/envkeep/internal/ui"
	"github.com/fennwick/envkeep/internal/utils"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Walk through envkeep interactively",
	Long: `Opens a numbered menu over the envkeep operations: status, export,
import, store, and remove. Handy when setting up a new machine without
remembering subcommands.

The menu loads the config and opens the credential store once, then
keeps running until you quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting interactive menu")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(configErrorMessage(err))
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			fmt.Println(storeErrorMessage(err))
			return err
		}

		printBanner()
		fmt.Printf("%s %d secret(s) defined, %d project(s) mapped\n",
			ui.Info.Sprint("→"), len(cfg.Secrets), len(cfg.Projects))

		return runMenu(bufio.NewReader(os.Stdin), cfg, st)
	},
}

// printBanner draws the ASCII banner in the CLI's cyan theme.
func printBanner() {
	fmt.Println()
	banner := figure.NewColorFigure("envkeep", "alligator2", "cyan", true)
	banner.Print()
	fmt.Println()
}

// runMenu loops reading choices until the user quits or stdin closes.
func runMenu(reader *bufio.Reader, cfg *config.Config, st store.Store) error {
	for {
		fmt.Println()
		fmt.Println(ui.Highlight.Sprint("What would you like to do?"))
		fmt.Println("  1) Show status")
		fmt.Println("  2) Export secrets to env files")
		fmt.Println("  3) Import values from env files")
		fmt.Println("  4) Store a secret")
		fmt.Println("  5) Remove a secret")
		fmt.Println("  6) Quit")

		choice, err := promptLine(reader, "Choice")
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to read choice: %v", err)
		}

		switch choice {
		case "1":
			report, err := engine.Status(context.Background(), cfg, st)
			if err != nil {
				return Logger.ErrorfAndReturn("Status failed: %v", err)
			}
			fmt.Print(ui.EnsureNewline(statusSummary(report)))
		case "2":
			report, err := engine.Export(context.Background(), cfg, st, engine.ExportOptions{})
			if err != nil {
				return Logger.ErrorfAndReturn("Export failed: %v", err)
			}
			fmt.Print(ui.EnsureNewline(exportSummary(report)))
		case "3":
			report, err := engine.Import(context.Background(), cfg, st, engine.ImportOptions{})
			if err != nil {
				return Logger.ErrorfAndReturn("Import failed: %v", err)
			}
			fmt.Print(ui.EnsureNewline(importSummary(report)))
		case "4":
			if err := menuStore(reader, cfg, st); err != nil {
				if err == io.EOF {
					fmt.Println()
					return nil
				}
				return err
			}
		case "5":
			if err := menuRemove(reader, cfg, st); err != nil {
				if err == io.EOF {
					fmt.Println()
					return nil
				}
				return err
			}
		case "6", "q", "quit", "exit":
			return nil
		case "":
			// Bare enter redraws the menu.
		default:
			fmt.Println(ui.Warning.Sprint("⚠") + " Unknown choice " + ui.Code.Sprint(choice))
		}
	}
}

// promptLine prints a prompt and reads one trimmed line of input.
func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// menuStore prompts for a secret name and value and writes the value to
// the store. Unknown names and empty values report and return to the
// menu rather than ending the session.
func menuStore(reader *bufio.Reader, cfg *config.Config, st store.Store) error {
	name, err := promptLine(reader, "Secret name")
	if err != nil {
		return err
	}
	def, ok := cfg.Resolve(name)
	if !ok {
		fmt.Println(unknownNameMessage(name))
		return nil
	}

	value, err := utils.ReadPassphrase(fmt.Sprintf("Value for %s: ", def.EnvVar))
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to read secret value: %v", err)
	}
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" {
		fmt.Println(ui.Error.Sprint("✗") + " Empty value, nothing stored")
		return nil
	}

	if err := st.Set(context.Background(), def.Account, trimmed); err != nil {
		return Logger.ErrorfAndReturn("Failed to store secret: %v", err)
	}
	fmt.Printf("%s Stored %s (%s)\n",
		ui.Success.Sprint("✓"), ui.Highlight.Sprint(def.Account), ui.Code.Sprint(def.EnvVar))
	return nil
}

// menuRemove prompts for a secret name and deletes its stored value.
func menuRemove(reader *bufio.Reader, cfg *config.Config, st store.Store) error {
	name, err := promptLine(reader, "Secret name")
	if err != nil {
		return err
	}
	def, ok := cfg.Resolve(name)
	if !ok {
		fmt.Println(unknownNameMessage(name))
		return nil
	}

	_, getErr := st.Get(context.Background(), def.Account)
	if err := st.Delete(context.Background(), def.Account); err != nil {
		return Logger.ErrorfAndReturn("Failed to remove secret: %v", err)
	}
	if getErr != nil {
		fmt.Printf("%s Nothing stored for %s\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(def.Account))
		return nil
	}
	fmt.Printf("%s Removed %s from the store\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(def.Account))
	return nil
}
