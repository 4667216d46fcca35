package gateway

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// engine is stateless, a single instance is safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderBody converts an item body from Markdown into the HTML the remote
// endpoint stores. Empty bodies render to the empty string.
func RenderBody(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("gateway: render body: %w", err)
	}
	return buf.String(), nil
}

// SlugForTitle derives the URL slug sent alongside a scheduled post. A title
// that normalizes to nothing yields an empty slug and the endpoint picks one.
func SlugForTitle(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil {
		return ""
	}
	return normalized
}
