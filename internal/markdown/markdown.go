// Package markdown converts markdown bodies (material notes, doc pages) to
// HTML through Goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown source to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with default Goldmark settings.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
