// Package ui provides semantic text formatting for envkeep's CLI output.
//
// Formatters carry a color for capable terminals and a plain-text
// decoration for environments where color is disabled (NO_COLOR, dumb
// terminals, piped output). Commands compose final messages from them:
//
//	msg := ui.Success.Sprint("✓") + " Exported " + ui.Path.Sprint(path)
//
// Masked secret previews pass through ui.Muted; raw secret values must
// never be printed through any formatter.
package ui
