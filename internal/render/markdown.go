// Package render turns markdown documents into the HTML embedded in component views.
//
// The markdown engine is goldmark. Output is customised through Hooks, a set of plain
// callbacks registered with goldmark above its default HTML renderer; Page builds the
// hooks for the PO UI and THF flavours of the generated views.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// hookPriority puts hooks ahead of goldmark's HTML renderer, registered at 1000.
const hookPriority = 100

// Convert renders src to HTML with hooks applied.
func Convert(src []byte, hooks Hooks) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			emoji.New(emoji.WithRenderingMethod(emoji.Unicode)),
		),
		goldmark.WithParserOptions(parser.WithAttribute()),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithXHTML(),
			renderer.WithNodeRenderers(util.Prioritized(&hookRenderer{hooks: hooks}, hookPriority)),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}
