package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const centred = `<span style="display: flex; overflow: auto; text-align: center; justify-content: center;">`

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func poOptions() Options {
	return Options{
		Theme:              ThemePO,
		HighlightClassName: "highlight",
		CopyExternalFiles:  true,
		ResourcePathName:   "app/docs/assets",
		NewID:              sequentialIDs(),
	}
}

func TestPage_Render_Title(t *testing.T) {
	res, err := NewPage(poOptions()).Render([]byte("# Zoo\n\nHello world\n"))
	require.NoError(t, err)

	assert.Equal(t, "Zoo", res.Title)
	assert.Equal(t, "<p class=\"po-font-text\">Hello world</p>\n", res.HTML)
	assert.Empty(t, res.Files)
}

func TestPage_Render_OnlyFirstTitleIsTaken(t *testing.T) {
	res, err := NewPage(poOptions()).Render([]byte("# First\n\n# Second\n\n## Sub\n"))
	require.NoError(t, err)

	assert.Equal(t, "First", res.Title)
	assert.Equal(t, "<h1>Second</h1>\n<h2>Sub</h2>\n", res.HTML)
}

func TestPage_Render_NoTitle(t *testing.T) {
	res, err := NewPage(poOptions()).Render([]byte("## Only a subtitle\n"))
	require.NoError(t, err)

	assert.Empty(t, res.Title)
	assert.Contains(t, res.HTML, "<h2>Only a subtitle</h2>")
}

func TestPage_Render_PO(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains []string
		excludes []string
	}{
		{
			name:     "Code block is escaped and classed",
			markdown: "```go\nif a < b { return \"x\" }\n```\n",
			contains: []string{
				`<pre><code class="highlight go">if a &lt; b &#123; return &quot;x&quot; &#125;` + "\n</code></pre>",
			},
		},
		{
			name:     "Code block without language",
			markdown: "```\nplain\n```\n",
			contains: []string{`<pre><code class="highlight">plain`},
		},
		{
			name:     "Code span escapes braces",
			markdown: "Use `{{ value }}` here\n",
			contains: []string{`<code>&#123;&#123; value &#125;&#125;</code>`},
		},
		{
			name:     "Markdown link becomes a router link",
			markdown: "See [Zebra](zebra/zebra.md).\n",
			contains: []string{`<a routerLink="../zebra">Zebra</a>`},
			excludes: []string{"href"},
		},
		{
			name:     "Parent relative markdown link",
			markdown: "[Lion](../lion/lion.md)\n",
			contains: []string{`<a routerLink="../lion">Lion</a>`},
		},
		{
			name:     "External link opens a new tab",
			markdown: "[Site](https://po-ui.io)\n",
			contains: []string{`<a href="https://po-ui.io" target="_blank" rel="noopener noreferrer">Site</a>`},
		},
		{
			name:     "Autolink and bare URL open a new tab",
			markdown: "See <https://example.com> and https://go.dev\n",
			contains: []string{
				`<a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a>`,
				`<a href="https://go.dev" target="_blank" rel="noopener noreferrer">https://go.dev</a>`,
			},
		},
		{
			name:     "Heading keeps inline markup and escapes braces",
			markdown: "# T\n\n## Using `{{value}}` and *em*\n",
			contains: []string{`<h2>Using <code>&#123;&#123;value&#125;&#125;</code> and <em>em</em></h2>`},
			excludes: []string{"{{value}}"},
		},
		{
			name:     "Unordered list",
			markdown: "- a\n- b\n",
			contains: []string{`<ul class="po-font-text">`, "<li>a</li>", "</ul>"},
		},
		{
			name:     "Ordered list keeps its start",
			markdown: "3. c\n4. d\n",
			contains: []string{`<ol class="po-font-text" start="3">`, "</ol>"},
		},
		{
			name:     "Table from GFM",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewPage(poOptions()).Render([]byte(tt.markdown))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, res.HTML, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, res.HTML, unwanted)
			}
		})
	}
}

func TestPage_Render_Images(t *testing.T) {
	src := "![Logo](img/logo.png)\n\n![Again](img/logo.png)\n\n![Remote](https://example.com/a.png)\n"

	res, err := NewPage(poOptions()).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, res.HTML, centred+`<img src="app/docs/assets/id-1.png" alt="Logo" /></span>`)
	assert.Contains(t, res.HTML, `<img src="app/docs/assets/id-1.png" alt="Again" />`)
	assert.Contains(t, res.HTML, `<img src="https://example.com/a.png" alt="Remote" />`)
	assert.Equal(t, []ExternalFile{{From: "img/logo.png", To: "id-1.png"}}, res.Files)
}

func TestPage_Render_RawHTML(t *testing.T) {
	src := "<img src=\"diagram.svg\" width=\"300\">\n"

	res, err := NewPage(poOptions()).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, res.HTML, centred+`<img src="app/docs/assets/id-1.svg" width="300">`)
	assert.Equal(t, []ExternalFile{{From: "diagram.svg", To: "id-1.svg"}}, res.Files)
}

func TestPage_Render_CopyDisabled(t *testing.T) {
	opts := poOptions()
	opts.CopyExternalFiles = false
	src := "![Logo](img/logo.png)\n\n<img src=\"diagram.svg\">\n"

	res, err := NewPage(opts).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, res.HTML, `<img src="img/logo.png" alt="Logo" />`)
	assert.Contains(t, res.HTML, `<img src="diagram.svg">`)
	assert.Empty(t, res.Files)
}

func TestPage_Render_THF(t *testing.T) {
	opts := poOptions()
	opts.Theme = ThemeTHF
	src := "# Guide\n\n## Getting Started\n\n## Using `{{value}}` and *em*\n\n#### Deep\n\n" +
		"Text with [link](https://thf.totvs.com.br) and <https://thf.totvs.com.br/guides>.\n\n![Logo](logo.png)\n"

	res, err := NewPage(opts).Render([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Guide", res.Title)
	assert.Contains(t, res.HTML, `<h2 id="getting-started"><a routerLink="." fragment="getting-started">Getting Started</a></h2>`)
	assert.Contains(t, res.HTML, `<h2 id="usingvalue-and-em"><a routerLink="." fragment="usingvalue-and-em">`+
		`Using <code>&#123;&#123;value&#125;&#125;</code> and <em>em</em></a></h2>`)
	assert.NotContains(t, res.HTML, "{{value}}")
	assert.Contains(t, res.HTML, "<h4>Deep</h4>")
	assert.Contains(t, res.HTML, "<p>Text with ")
	assert.Contains(t, res.HTML, `<a href="https://thf.totvs.com.br" target="_blank">link</a>`)
	assert.Contains(t, res.HTML, `<a href="https://thf.totvs.com.br/guides" target="_blank">https://thf.totvs.com.br/guides</a>`)
	assert.Contains(t, res.HTML, `<img src="app/docs/assets/id-1.png" alt="Logo" />`)
	assert.NotContains(t, res.HTML, "po-font-text")
	assert.NotContains(t, res.HTML, "<span")
}

func TestFragment(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Getting Started", want: "getting-started"},
		{title: "Configuração avançada", want: "configuracao-avancada"},
		{title: "Install (Linux)", want: "install-linux"},
		{title: "a, b", want: "a-b"},
		{title: "<b>Bold</b> text", want: "bold-text"},
		{title: "Hello - world", want: "hello-world"},
		{title: "Call()", want: "call"},
		{title: "Configuração (avançada)", want: "configuracao-avancada"},
		{title: "Using {{value}} and em", want: "usingvalue-and-em"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Fragment(tt.title))
		})
	}
}

func TestConvert_DefaultsWithoutHooks(t *testing.T) {
	out, err := Convert([]byte("# Title\n\nText\n"), Hooks{})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n<p>Text</p>\n", out)
}
