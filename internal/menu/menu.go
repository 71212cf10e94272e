// Package menu rebuilds the navigation menu of the generated documentation module.
//
// The input is the flat, ordered list of discovered markdown files. The output is a
// forest whose nesting mirrors the directory containment of those files, or a flat list
// when flattening is requested.
package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidInput is returned when a source path cannot be related to another one.
var ErrInvalidInput = errors.New("invalid menu input")

// Item is one discovered markdown file, in discovery order.
type Item struct {
	Title string
	// SourcePath is only used to infer ancestry. It never reaches the output.
	SourcePath string
	// Key is the short route identifier of the item, usually the component name.
	Key string
}

// Node is a menu entry. Children is nil for leaves so it is omitted when serialized.
type Node struct {
	Label    string `json:"label"`
	Link     string `json:"link"`
	Children []Node `json:"children,omitempty"`
}

// Options controls how the forest is built.
type Options struct {
	// Flatten places every item at the root of the forest.
	Flatten bool
	// ParentRoute prefixes every link when not empty.
	ParentRoute string
}

type entry struct {
	label    string
	link     string
	file     string
	children []*entry
}

// Build converts items into a menu forest.
//
// Source paths are expected to be unique and share a common root; this is not checked.
// Siblings keep the relative order of their items.
func Build(items []Item, opts Options) ([]Node, error) {
	var forest []*entry

	for _, item := range items {
		e := &entry{
			label: item.Title,
			link:  Link(item.Key, opts.ParentRoute),
			file:  item.SourcePath,
		}

		if opts.Flatten {
			forest = append(forest, e)
			continue
		}

		parent, err := findParent(forest, e.file)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			parent.children = append(parent.children, e)
		} else {
			forest = append(forest, e)
		}
	}

	return prune(forest), nil
}

// Link builds the route of an item.
func Link(key, parentRoute string) string {
	if parentRoute != "" {
		return parentRoute + "/" + key
	}
	return key
}

// findParent searches the forest depth-first for the direct parent of file.
// Once a node with children fails to match, the search is settled inside its subtree:
// later siblings are never reconsidered.
func findParent(level []*entry, file string) (*entry, error) {
	for _, e := range level {
		ok, err := IsDirectChild(e.file, file)
		if err != nil {
			return nil, err
		}
		if ok {
			return e, nil
		}
		if len(e.children) > 0 {
			return findParent(e.children, file)
		}
	}
	return nil, nil
}

// IsDirectChild reports whether childFile lives exactly one directory below the
// directory of parentFile.
func IsDirectChild(parentFile, childFile string) (bool, error) {
	parentDir := filepath.Dir(normalize(parentFile))
	rel, err := filepath.Rel(parentDir, normalize(childFile))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rel = filepath.ToSlash(rel)

	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			return false, nil
		}
	}
	return strings.Count(rel, "/") == 1, nil
}

func normalize(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

func prune(level []*entry) []Node {
	if len(level) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(level))
	for _, e := range level {
		nodes = append(nodes, Node{
			Label:    e.label,
			Link:     e.link,
			Children: prune(e.children),
		})
	}
	return nodes
}
