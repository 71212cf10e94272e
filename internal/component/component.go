// Package component describes the Angular component generated from one markdown file.
package component

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sevigo/md2poui/internal/menu"
	"github.com/sevigo/md2poui/internal/util"
)

// Component holds everything the templates need to emit a component.
type Component struct {
	// File is the markdown file the component is rendered from.
	File string
	// Path is the output directory relative to the destination root, "/" separated.
	Path string
	// Name is the selector, file name and route of the component.
	Name      string
	ClassName string
	Title     string
}

// New describes the component for file found under srcDir.
//
// With flatDirs every component lives directly below the destination root:
//
//	flatDirs=true  zoo/animals/zebra/zebra.md -> zebra/
//	flatDirs=false zoo/animals/zebra/zebra.md -> zoo/animals/zebra/
func New(srcDir, file string, flatDirs bool) (*Component, error) {
	rel, err := filepath.Rel(srcDir, file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q against %q: %w", file, srcDir, err)
	}
	dir := filepath.ToSlash(filepath.Dir(rel))

	if flatDirs {
		dir = dir[strings.LastIndex(dir, "/")+1:]
	}

	name := strings.ToLower(filepath.Base(filepath.Join(srcDir, filepath.FromSlash(dir))))

	return &Component{
		File:      file,
		Path:      dir,
		Name:      name,
		ClassName: util.PascalCase(util.Identifier(name)),
	}, nil
}

// SetTitle uses title when it is not empty and falls back to the component name otherwise.
func (c *Component) SetTitle(title string) {
	if strings.TrimSpace(title) == "" {
		title = c.Name
	}
	c.Title = title
}

// MenuItem converts the component into the menu builder input.
func (c *Component) MenuItem() menu.Item {
	return menu.Item{
		Title:      c.Title,
		SourcePath: c.File,
		Key:        c.Name,
	}
}

// MenuItems converts components in order.
func MenuItems(components []*Component) []menu.Item {
	items := make([]menu.Item, 0, len(components))
	for _, c := range components {
		items = append(items, c.MenuItem())
	}
	return items
}
