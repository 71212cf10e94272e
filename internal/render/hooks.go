package render

import (
	"bytes"

	emojiast "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Hooks replaces the HTML goldmark emits for selected node kinds.
// A nil hook keeps goldmark's default output for that kind.
type Hooks struct {
	// Heading wraps the rendered heading content. text is the plain heading text.
	// An empty open drops the heading and its content.
	Heading func(level int, text string) (open, close string)
	// Code renders fenced and indented code blocks.
	Code     func(language, code string) string
	CodeSpan func(code string) string
	// HTML receives raw HTML blocks and inline raw HTML.
	HTML  func(raw string) string
	Image func(dest, title, alt string) string

	// Container hooks return the opening and closing markup around the rendered children.
	Link      func(dest, title string) (open, close string)
	Paragraph func() (open, close string)
	List      func(ordered bool, start int) (open, close string)
}

// hookRenderer plugs Hooks into goldmark's renderer registry.
type hookRenderer struct {
	hooks Hooks

	headingClose string
}

func (r *hookRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	if r.hooks.Heading != nil {
		reg.Register(ast.KindHeading, r.renderHeading)
	}
	if r.hooks.Code != nil {
		reg.Register(ast.KindFencedCodeBlock, r.renderCode)
		reg.Register(ast.KindCodeBlock, r.renderCode)
	}
	if r.hooks.CodeSpan != nil {
		reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	}
	if r.hooks.HTML != nil {
		reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
		reg.Register(ast.KindRawHTML, r.renderRawHTML)
	}
	if r.hooks.Image != nil {
		reg.Register(ast.KindImage, r.renderImage)
	}
	if r.hooks.Link != nil {
		reg.Register(ast.KindLink, r.renderLink)
		reg.Register(ast.KindAutoLink, r.renderAutoLink)
	}
	if r.hooks.Paragraph != nil {
		reg.Register(ast.KindParagraph, r.renderParagraph)
	}
	if r.hooks.List != nil {
		reg.Register(ast.KindList, r.renderList)
	}
}

func (r *hookRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString(r.headingClose)
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Heading)
	open, closing := r.hooks.Heading(n.Level, plainText(n, source))
	if open == "" {
		return ast.WalkSkipChildren, nil
	}
	r.headingClose = closing
	_, _ = w.WriteString(open)
	return ast.WalkContinue, nil
}

func (r *hookRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var language string
	if n, ok := node.(*ast.FencedCodeBlock); ok {
		language = string(n.Language(source))
	}
	_, _ = w.WriteString(r.hooks.Code(language, string(lines(node, source))))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			value := t.Segment.Value(source)
			if bytes.HasSuffix(value, []byte("\n")) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(value)
		}
	}
	_, _ = w.WriteString(r.hooks.CodeSpan(buf.String()))
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	raw := lines(n, source)
	if n.HasClosure() {
		raw = append(raw, n.ClosureLine.Value(source)...)
	}
	_, _ = w.WriteString(r.hooks.HTML(string(raw)))
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		buf.Write(segment.Value(source))
	}
	_, _ = w.WriteString(r.hooks.HTML(buf.String()))
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_, _ = w.WriteString(r.hooks.Image(string(n.Destination), string(n.Title), plainText(n, source)))
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	open, closing := r.hooks.Link(string(n.Destination), string(n.Title))
	if entering {
		_, _ = w.WriteString(open)
	} else {
		_, _ = w.WriteString(closing)
	}
	return ast.WalkContinue, nil
}

// renderAutoLink covers <scheme:...> autolinks and linkified bare URLs.
func (r *hookRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	open, closing := r.hooks.Link(string(n.URL(source)), "")
	_, _ = w.WriteString(open)
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString(closing)
	return ast.WalkSkipChildren, nil
}

func (r *hookRenderer) renderParagraph(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	open, closing := r.hooks.Paragraph()
	if entering {
		_, _ = w.WriteString(open)
	} else {
		_, _ = w.WriteString(closing)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *hookRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	open, closing := r.hooks.List(n.IsOrdered(), n.Start)
	if entering {
		_, _ = w.WriteString(open)
		_ = w.WriteByte('\n')
	} else {
		_, _ = w.WriteString(closing)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func lines(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	l := node.Lines()
	for i := 0; i < l.Len(); i++ {
		line := l.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}

// plainText concatenates the text below node, dropping inline markup.
func plainText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *emojiast.Emoji:
			buf.WriteString(string(t.Value.Unicode))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
