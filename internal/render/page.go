package render

import (
	"fmt"
	"html"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Theme selects the component library the generated views target.
type Theme string

const (
	ThemePO  Theme = "po"
	ThemeTHF Theme = "thf"
)

const fontTextClass = "po-font-text"

var srcAttrRegexp = regexp.MustCompile(`src="([^"]*?)"`)

// ExternalFile is a local file referenced by a document that must be copied next to
// the generated components.
type ExternalFile struct {
	// From is the reference as written in the document, relative to it.
	From string
	// To is the file name inside the resource folder.
	To string
}

// Options configures a Page.
type Options struct {
	Theme              Theme
	HighlightClassName string
	CopyExternalFiles  bool
	// ResourcePathName prefixes rewritten references to copied files.
	ResourcePathName string
	// NewID names copied files. Defaults to time based UUIDs.
	NewID func() string
}

// Result is a rendered document.
type Result struct {
	// Title is the text of the first level 1 heading, which is not part of HTML.
	Title string
	HTML  string
	Files []ExternalFile
}

// Page renders one document. It collects state while rendering and must not be shared.
type Page struct {
	opts  Options
	title string
	files []ExternalFile
	seen  map[string]string
}

func NewPage(opts Options) *Page {
	if opts.NewID == nil {
		opts.NewID = newUUID
	}
	if opts.Theme == "" {
		opts.Theme = ThemePO
	}
	return &Page{opts: opts, seen: make(map[string]string)}
}

// Render converts src and returns the view body, title and referenced files.
func (p *Page) Render(src []byte) (*Result, error) {
	out, err := Convert(src, p.Hooks())
	if err != nil {
		return nil, err
	}
	return &Result{Title: p.title, HTML: out, Files: p.files}, nil
}

// Hooks returns the hook set of the configured theme.
func (p *Page) Hooks() Hooks {
	hooks := Hooks{
		Heading:  p.heading,
		Code:     p.code,
		CodeSpan: p.codeSpan,
		HTML:     p.html,
		Image:    p.image,
		Link:     p.link,
	}
	if p.opts.Theme == ThemePO {
		hooks.Paragraph = func() (string, string) {
			return `<p class="` + fontTextClass + `">`, "</p>"
		}
		hooks.List = func(ordered bool, start int) (string, string) {
			if ordered {
				return fmt.Sprintf(`<ol class="%s" start="%d">`, fontTextClass, start), "</ol>"
			}
			return `<ul class="` + fontTextClass + `">`, "</ul>"
		}
	}
	return hooks
}

func (p *Page) heading(level int, text string) (string, string) {
	if level == 1 && p.title == "" {
		p.title = text
		return "", ""
	}

	if p.opts.Theme == ThemeTHF && level <= 3 {
		fragment := Fragment(text)
		return fmt.Sprintf(`<h%d id="%s"><a routerLink="." fragment="%s">`, level, fragment, fragment), fmt.Sprintf("</a></h%d>", level)
	}
	return fmt.Sprintf("<h%d>", level), fmt.Sprintf("</h%d>", level)
}

func (p *Page) code(language, code string) string {
	class := strings.TrimSpace(p.opts.HighlightClassName + " " + language)
	return fmt.Sprintf(`<pre><code class="%s">%s</code></pre>`, html.EscapeString(class), escapeCode(code))
}

func (p *Page) codeSpan(code string) string {
	return "<code>" + escapeCode(code) + "</code>"
}

func (p *Page) html(raw string) string {
	if !p.opts.CopyExternalFiles {
		return raw
	}

	rewritten := false
	for _, match := range srcAttrRegexp.FindAllStringSubmatch(raw, -1) {
		ref := match[1]
		if ref == "" || isExternal(ref) {
			continue
		}
		raw = strings.ReplaceAll(raw, `src="`+ref+`"`, `src="`+p.resource(ref)+`"`)
		rewritten = true
	}

	if rewritten {
		return p.wrapResource(raw)
	}
	return raw
}

func (p *Page) image(dest, _, alt string) string {
	src := dest
	if p.opts.CopyExternalFiles && !isExternal(dest) {
		src = p.resource(dest)
	}
	return p.wrapResource(fmt.Sprintf(`<img src="%s" alt="%s" />`, html.EscapeString(src), html.EscapeString(alt)))
}

func (p *Page) link(dest, _ string) (string, string) {
	if !isExternal(dest) && strings.Contains(dest, ".md") {
		target := path.Base(path.Dir(filepath.ToSlash(dest)))
		return fmt.Sprintf(`<a routerLink="../%s">`, html.EscapeString(target)), "</a>"
	}
	rel := ""
	if p.opts.Theme == ThemePO {
		rel = ` rel="noopener noreferrer"`
	}
	return fmt.Sprintf(`<a href="%s" target="_blank"%s>`, html.EscapeString(dest), rel), "</a>"
}

// resource registers ref as an external file once and returns its rewritten location.
func (p *Page) resource(ref string) string {
	to, ok := p.seen[ref]
	if !ok {
		to = p.opts.NewID() + path.Ext(ref)
		p.seen[ref] = to
		p.files = append(p.files, ExternalFile{From: ref, To: to})
	}
	if p.opts.ResourcePathName == "" {
		return to
	}
	return p.opts.ResourcePathName + "/" + to
}

// wrapResource centres media in PO views. A span is used since the content may sit
// inside a paragraph.
func (p *Page) wrapResource(content string) string {
	if p.opts.Theme != ThemePO {
		return content
	}
	return `<span style="display: flex; overflow: auto; text-align: center; justify-content: center;">` + content + `</span>`
}

var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
	"{", "&#123;",
	"}", "&#125;",
)

// escapeCode escapes HTML and Angular interpolation braces.
func escapeCode(code string) string {
	return codeEscaper.Replace(code)
}

func isExternal(ref string) bool {
	if strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "#") {
		return true
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != ""
}

func newUUID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
