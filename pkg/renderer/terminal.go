package renderer

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders doc for display in a terminal. An empty style picks one
// from the terminal background; width <= 0 disables word wrapping.
func Terminal(doc *Document, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width, 0))}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := r.Render(Markdown(doc))
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return out, nil
}
