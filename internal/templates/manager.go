// Package templates renders the Angular sources generated for a documentation module.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sevigo/md2poui/internal/component"
)

//go:embed files/*.tmpl
var templateFiles embed.FS

type Theme string
type Key string

const (
	DefaultTheme Theme = "default"
	ThemePO      Theme = "po"
	ThemeTHF     Theme = "thf"

	ComponentTemplate Key = "component"
	ViewTemplate      Key = "view"
	HomeTemplate      Key = "home"
	HomeViewTemplate  Key = "home_view"
	ModuleTemplate    Key = "module"
	RoutingTemplate   Key = "routing"
	ServiceTemplate   Key = "service"
)

// ViewData feeds ViewTemplate.
type ViewData struct {
	Title   string
	Content string
}

// Import is an extra Angular module imported by the generated module.
type Import struct {
	Name string
	Path string
}

// ModuleData feeds the home, module, routing and service templates.
type ModuleData struct {
	ModuleName      string
	ModuleClassName string
	// ModuleVar is the camelCase name used for injected members.
	ModuleVar  string
	Home       bool
	Components []*component.Component
	Imports    []Import
	// MenuItems is the literal produced by MenuLiteral.
	MenuItems string
}

type Manager struct {
	templates map[Key]map[Theme]*template.Template
}

func NewManager() (*Manager, error) {
	m := &Manager{
		templates: make(map[Key]map[Theme]*template.Template),
	}

	files, err := templateFiles.ReadDir("files")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		fileName := file.Name()
		baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		lastUnderscore := strings.LastIndex(baseName, "_")
		if lastUnderscore <= 0 || lastUnderscore == len(baseName)-1 {
			return nil, fmt.Errorf("invalid template filename format: %s (expected 'key_theme.tmpl')", fileName)
		}

		key := Key(baseName[:lastUnderscore])
		theme := Theme(baseName[lastUnderscore+1:])

		content, err := templateFiles.ReadFile("files/" + fileName)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded template file %s: %w", fileName, err)
		}

		if err := m.register(key, theme, string(content)); err != nil {
			return nil, fmt.Errorf("failed to register template from file %s: %w", fileName, err)
		}
	}

	return m, nil
}

func (m *Manager) register(key Key, theme Theme, content string) error {
	tmpl := template.New(string(key) + "_" + string(theme))
	tmpl.Funcs(template.FuncMap{
		"attr":     html.EscapeString,
		"indent":   indent,
		"trimLeft": func(s string) string { return strings.TrimLeft(s, " ") },
		"include": func(name string, data any) (string, error) {
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	})

	if _, err := tmpl.Parse(content); err != nil {
		return fmt.Errorf("could not parse template: %w", err)
	}

	if _, ok := m.templates[key]; !ok {
		m.templates[key] = make(map[Theme]*template.Template)
	}

	m.templates[key][theme] = tmpl
	return nil
}

// Get returns the template for key in theme, falling back to the default theme.
func (m *Manager) Get(key Key, theme Theme) (*template.Template, error) {
	themed, ok := m.templates[key]
	if !ok {
		return nil, fmt.Errorf("no templates found for key '%s'", key)
	}

	if tmpl, ok := themed[theme]; ok {
		return tmpl, nil
	}
	if tmpl, ok := themed[DefaultTheme]; ok {
		return tmpl, nil
	}

	return nil, fmt.Errorf("no template found for key '%s' and theme '%s', and no default was available", key, theme)
}

func (m *Manager) Render(key Key, theme Theme, data any) (string, error) {
	tmpl, err := m.Get(key, theme)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
