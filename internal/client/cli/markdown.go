package cli

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
)

// renderMarkdown renders duck replies and problem notes. Text is returned
// unchanged when no renderer is available.
func renderMarkdown(s string) string {
	mdOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			mdRenderer = r
		}
	})
	if mdRenderer == nil {
		return s
	}
	out, err := mdRenderer.Render(s)
	if err != nil {
		return s
	}
	return strings.Trim(out, "\n")
}
