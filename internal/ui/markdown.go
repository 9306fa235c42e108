package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	defaultMarkdownWidth = 80
	defaultMarkdownStyle = "dark"
)

// mdCache keeps the last glamour renderer; building one parses a full style
// sheet, and the dashboard renders on every resize.
var mdCache struct {
	sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

func resetMarkdownCache() {
	mdCache.Lock()
	mdCache.renderer = nil
	mdCache.width = 0
	mdCache.style = ""
	mdCache.Unlock()
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour
// style. Rendering failures fall back to the raw content.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	if width < 1 {
		width = defaultMarkdownWidth
	}
	if style == "" {
		style = defaultMarkdownStyle
	}

	mdCache.Lock()
	defer mdCache.Unlock()

	if mdCache.renderer == nil || mdCache.width != width || mdCache.style != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		mdCache.renderer, mdCache.width, mdCache.style = r, width, style
	}

	rendered, err := mdCache.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, defaultMarkdownStyle)
}
