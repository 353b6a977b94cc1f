package cmd

import (
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// colorOut is false when stdout is redirected or NO_COLOR is set, so
// piped output stays free of escape sequences.
var colorOut = os.Getenv("NO_COLOR") == "" &&
	(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

func paint(style lipgloss.Style, text string) string {
	if !colorOut {
		return text
	}
	return style.Render(text)
}
