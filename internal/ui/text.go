package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to a piece of CLI output. When
// color is unavailable it falls back to a plain-text decoration instead.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor reports whether color output should be disabled, honoring both
// the NO_COLOR convention (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for envkeep's CLI output.
var (
	// Code formats runnable commands. Yellow with color, `backticks` without.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths. Yellow with color, bare without.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats success indicators. Green.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators. Red.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warning indicators. Yellow.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators. Cyan.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized values like secret names and env vars.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats de-emphasized text such as masked previews.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
