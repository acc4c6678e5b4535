// Package reporter surfaces the final launch error to the user: a
// message box on Windows, colored stderr everywhere else or when
// console reporting is requested.
package reporter

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter delivers one user-facing error message per launch.
type Reporter interface {
	Report(message string)
}

// Console reports to stderr. Output is colored only when stderr is a
// terminal.
type Console struct{}

// NewConsole returns a stderr reporter.
func NewConsole() *Console {
	return &Console{}
}

// Report writes the message to stderr.
func (c *Console) Report(message string) {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, message)
		return
	}
	fmt.Fprintln(os.Stderr, message)
}

// New returns the platform default reporter: a dialog on Windows,
// stderr elsewhere. console forces stderr reporting.
func New(console bool) Reporter {
	if console {
		return NewConsole()
	}
	return platformDefault()
}
