package outwriter

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/dreamscape/testkit/internal/contract"
)

// RenderMarkdownTerminal styles a Markdown report for the terminal. Without colors
// the plain notty style is used so output stays readable when piped.
func RenderMarkdownTerminal(markdown string, cfg *contract.Config) (string, error) {
	style := glamour.WithAutoStyle()
	if !cfg.UseColors {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(GetTerminalWidth(cfg)),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}
