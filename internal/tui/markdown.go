package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdRenderer     *glamour.TermRenderer //nolint:gochecknoglobals // cached renderer for performance
	mdRendererOnce sync.Once             //nolint:gochecknoglobals // sync.Once for renderer initialization
)

// markdownRenderer returns a cached glamour renderer. Initialization happens
// once; a nil return means terminal rendering is unavailable.
func markdownRenderer() *glamour.TermRenderer {
	mdRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			mdRenderer = r
		}
	})
	return mdRenderer
}

// RenderMarkdown renders markdown for terminal display, falling back to the
// raw content when the renderer is unavailable or fails.
func RenderMarkdown(content string) string {
	r := markdownRenderer()
	if r == nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
