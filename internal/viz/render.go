package viz

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in model prose is escaped; custom components travel separately
// in Data.CustomComponent.
var prose = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// RenderProse converts the Markdown prose of an answer to HTML.
func RenderProse(text string) (string, error) {
	var buf bytes.Buffer
	if err := prose.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering prose: %w", err)
	}
	return buf.String(), nil
}
