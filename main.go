package main

import (
	"os"

	"github.com/fennwick/envkeep/cmd"
)

func main() {
	// Commands print their own error messages, so a failed run only
	// needs the exit code here.
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
