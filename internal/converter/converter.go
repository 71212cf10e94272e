// Package converter turns a tree of markdown files into an Angular module of
// documentation components.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/md2poui/internal/component"
	"github.com/sevigo/md2poui/internal/config"
	"github.com/sevigo/md2poui/internal/discovery"
	"github.com/sevigo/md2poui/internal/menu"
	"github.com/sevigo/md2poui/internal/render"
	"github.com/sevigo/md2poui/internal/templates"
	"github.com/sevigo/md2poui/internal/util"
)

// Renderer renders one markdown document.
type Renderer interface {
	Render(src []byte) (*render.Result, error)
}

// RendererFactory returns a fresh Renderer for every document.
type RendererFactory func(opts render.Options) Renderer

// Finder lists the markdown files below a source path.
type Finder interface {
	Find(srcPath string) ([]string, error)
}

var _ Finder = (*discovery.Finder)(nil)

// Deps are the collaborators of a Converter.
type Deps struct {
	Logger      *slog.Logger
	Templates   *templates.Manager
	Finder      Finder
	NewRenderer RendererFactory
	FS          FileSystem
}

// Result summarizes a conversion run.
type Result struct {
	Components []*component.Component
	Menu       []menu.Node
	// Written lists every file written or copied, in order.
	Written []string
}

type Converter struct {
	src  string
	dest string
	opts config.Options
	deps Deps

	written []string
}

// New validates opts and prepares a conversion of src into dest. opts is copied and
// its placeholders resolved.
func New(src, dest string, opts *config.Options, deps Deps) (*Converter, error) {
	if opts == nil {
		opts = config.Default()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	resolved := *opts
	resolved.Resolve()

	return &Converter{src: src, dest: dest, opts: resolved, deps: deps}, nil
}

// NewRenderer is the RendererFactory backed by render.Page.
func NewRenderer(opts render.Options) Renderer {
	return render.NewPage(opts)
}

// Execute runs the conversion.
func (c *Converter) Execute(ctx context.Context) (*Result, error) {
	c.written = nil
	c.deps.Logger.Info("converting markdown", "source", c.src, "destination", c.dest, "theme", c.opts.Theme())

	if c.opts.Home {
		if err := c.writeHome(); err != nil {
			return nil, err
		}
	}

	components, err := c.loadComponents()
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		c.deps.Logger.Warn("no markdown files found", "source", c.src)
	}

	pages, err := c.renderPages(ctx, components)
	if err != nil {
		return nil, err
	}

	for i, comp := range components {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.writeComponent(comp, pages[i]); err != nil {
			return nil, err
		}
	}

	nodes, err := menu.Build(component.MenuItems(components), menu.Options{
		Flatten:     c.opts.FlatDirs,
		ParentRoute: c.opts.ParentRoutePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}

	if c.opts.CreateHelpers {
		if err := c.writeHelpers(components, nodes); err != nil {
			return nil, err
		}
	}

	c.deps.Logger.Info("conversion finished", "components", len(components), "files", len(c.written))
	return &Result{Components: components, Menu: nodes, Written: c.written}, nil
}

func (c *Converter) loadComponents() ([]*component.Component, error) {
	files, err := c.deps.Finder.Find(c.src)
	if err != nil {
		return nil, fmt.Errorf("failed to find markdown files: %w", err)
	}

	srcDir := c.src
	if len(files) == 1 && files[0] == c.src {
		srcDir = filepath.Dir(c.src)
	}

	components := make([]*component.Component, 0, len(files))
	for _, file := range files {
		comp, err := component.New(srcDir, file, c.opts.FlatDirs)
		if err != nil {
			return nil, err
		}
		components = append(components, comp)
	}
	return components, nil
}

// renderPages renders all documents concurrently. Results keep the order of components.
func (c *Converter) renderPages(ctx context.Context, components []*component.Component) ([]*render.Result, error) {
	pages := make([]*render.Result, len(components))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, comp := range components {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := c.deps.FS.ReadFile(comp.File)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", comp.File, err)
			}

			page, err := c.deps.NewRenderer(c.renderOptions()).Render(src)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", comp.File, err)
			}

			c.deps.Logger.Debug("rendered markdown", "file", comp.File, "title", page.Title, "files", len(page.Files))
			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Converter) renderOptions() render.Options {
	return render.Options{
		Theme:              render.Theme(c.opts.Theme()),
		HighlightClassName: c.opts.HighlightClassName,
		CopyExternalFiles:  c.opts.CopyExternalFiles,
		ResourcePathName:   c.opts.ResourcePathName,
	}
}

func (c *Converter) writeComponent(comp *component.Component, page *render.Result) error {
	comp.SetTitle(page.Title)

	if c.opts.CopyExternalFiles && len(page.Files) > 0 {
		if err := c.copyFiles(filepath.Dir(comp.File), page.Files); err != nil {
			return err
		}
	}

	dir := filepath.Join(c.dest, filepath.FromSlash(comp.Path))
	if err := c.deps.FS.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	class, err := c.deps.Templates.Render(templates.ComponentTemplate, c.theme(), comp)
	if err != nil {
		return err
	}
	if err := c.write(filepath.Join(dir, comp.Name+".component.ts"), class); err != nil {
		return err
	}

	view, err := c.deps.Templates.Render(templates.ViewTemplate, c.theme(), templates.ViewData{Title: comp.Title, Content: page.HTML})
	if err != nil {
		return err
	}
	return c.write(filepath.Join(dir, comp.Name+".component.html"), view)
}

func (c *Converter) copyFiles(srcDir string, files []render.ExternalFile) error {
	destDir := filepath.Join(c.dest, filepath.FromSlash(c.opts.ResourceFolderName))
	if err := c.deps.FS.MkdirAll(destDir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	for _, f := range files {
		from := filepath.Join(srcDir, filepath.FromSlash(f.From))
		to := filepath.Join(destDir, f.To)
		if err := c.deps.FS.CopyFile(from, to); err != nil {
			return fmt.Errorf("failed to copy external file %s: %w", from, err)
		}
		c.written = append(c.written, to)
	}
	return nil
}

func (c *Converter) writeHome() error {
	if err := c.deps.FS.MkdirAll(c.dest); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.dest, err)
	}

	data := c.moduleData(nil, "")
	base := filepath.Join(c.dest, c.opts.ModuleName+"-home.component")
	if err := c.renderTo(templates.HomeTemplate, base+".ts", data); err != nil {
		return err
	}
	return c.renderTo(templates.HomeViewTemplate, base+".html", data)
}

func (c *Converter) writeHelpers(components []*component.Component, nodes []menu.Node) error {
	literal, err := templates.MenuLiteral(nodes)
	if err != nil {
		return err
	}

	if err := c.deps.FS.MkdirAll(c.dest); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.dest, err)
	}

	data := c.moduleData(components, literal)
	name := c.opts.ModuleName
	if err := c.renderTo(templates.ModuleTemplate, filepath.Join(c.dest, name+".module.ts"), data); err != nil {
		return err
	}
	if err := c.renderTo(templates.RoutingTemplate, filepath.Join(c.dest, name+"-routing.module.ts"), data); err != nil {
		return err
	}
	return c.renderTo(templates.ServiceTemplate, filepath.Join(c.dest, name+".service.ts"), data)
}

func (c *Converter) renderTo(key templates.Key, path string, data templates.ModuleData) error {
	content, err := c.deps.Templates.Render(key, c.theme(), data)
	if err != nil {
		return err
	}
	return c.write(path, content)
}

func (c *Converter) moduleData(components []*component.Component, menuItems string) templates.ModuleData {
	className := util.PascalCase(util.Identifier(c.opts.ModuleName))

	imports := make([]templates.Import, 0, len(c.opts.Imports))
	for _, imp := range c.opts.Imports {
		imports = append(imports, templates.Import{Name: imp.Name, Path: imp.Path})
	}

	return templates.ModuleData{
		ModuleName:      c.opts.ModuleName,
		ModuleClassName: className,
		ModuleVar:       lowerFirst(className),
		Home:            c.opts.Home,
		Components:      components,
		Imports:         imports,
		MenuItems:       menuItems,
	}
}

func (c *Converter) write(path, content string) error {
	if err := c.deps.FS.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	c.deps.Logger.Debug("wrote file", "path", path)
	c.written = append(c.written, path)
	return nil
}

func (c *Converter) theme() templates.Theme {
	return templates.Theme(c.opts.Theme())
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
