package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer transforms markdown into terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a markdown renderer backed by glamour.
// Styled output is only used when out is a terminal; otherwise the "notty"
// style keeps the text free of escape sequences.
func NewRenderer(out *os.File) Renderer {
	style := glamour.WithStandardStyle("notty")
	if out != nil && IsTerminal(out) {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(120))
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return r.Render
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
