package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/fennwick/envkeep/internal/config"
	kerrors "github.com/fennwick/envkeep/internal/errors"
	"github.com/fennwick/envkeep/internal/store"
	"github.com/fennwick/envkeep/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function automatically calls ui.EnsureNewline() on the final
// message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadConfig reads the declarative config. The --config flag beats
// $ENVKEEP_CONFIG, which beats the default location.
func loadConfig() (*config.Config, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	Logger.Debugf("Loading config from %s", path)
	return config.Load(path)
}

// openStore opens the credential store the user profile selects, using
// the config's service name as the namespace.
func openStore(cfg *config.Config) (store.Store, error) {
	profilePath, err := store.ProfilePath()
	if err != nil {
		return nil, err
	}
	profile, err := store.EnsureProfile(profilePath)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Opening %s store for service %s", profile.Store.Backend, cfg.Settings.Service)
	return store.Open(profile, cfg.Settings.Service)
}

// configErrorMessage turns a config load failure into a final message
// with a pointer at the likely fix.
func configErrorMessage(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrConfigNotFound):
		return ui.Error.Sprint("✗") + " No secrets config found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep init") + " to create a starter config"
	case errors.Is(err, kerrors.ErrNoSecretsDefined):
		return ui.Error.Sprint("✗") + " The config defines no secrets\n" +
			ui.Info.Sprint("→") + " Add lines to the " + ui.Code.Sprint("[secrets]") + " section: " +
			ui.Code.Sprint("account-name | ENV_VAR | description")
	case errors.Is(err, kerrors.ErrDuplicateAccount), errors.Is(err, kerrors.ErrDuplicateEnvVar):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Each account and env var may appear only once"
	default:
		return ui.Error.Sprint("✗") + " Failed to load config: " + err.Error()
	}
}

// storeErrorMessage turns a store-open failure into a final message.
func storeErrorMessage(err error) string {
	if errors.Is(err, kerrors.ErrUnknownBackend) {
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Recognized backends: " + ui.Code.Sprint(strings.Join(store.BackendNames(), ", "))
	}
	msg := ui.Error.Sprint("✗") + " Could not open the credential store\n" +
		ui.Info.Sprint("→") + " " + err.Error()
	if available := store.AvailableBackendNames(); len(available) > 0 {
		msg += "\n" + ui.Info.Sprint("→") + " Available on this machine: " + ui.Code.Sprint(strings.Join(available, ", "))
	}
	return msg
}
