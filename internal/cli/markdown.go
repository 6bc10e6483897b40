package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders md for the terminal. Unstyled output uses the
// notty style, which keeps the text free of escape sequences.
func renderMarkdown(md string, width int, styled bool) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if width <= 0 {
		width = 80
	}
	style := "notty"
	if styled {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle(style),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
