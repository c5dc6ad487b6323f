package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DisableColorUnlessTTY strips ANSI styling when f is a pipe or file.
func DisableColorUnlessTTY(f *os.File) {
	if !IsTTY(f) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
