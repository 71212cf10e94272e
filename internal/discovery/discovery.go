// Package discovery finds the markdown files a conversion run works on.
package discovery

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const markdownExt = ".md"

var ErrSourceNotFound = errors.New("source path not found")

// Options controls which files are returned.
type Options struct {
	Recursive bool
	// Exclusions are files or directories (as reachable from the source path) to skip.
	Exclusions []string
	// RespectGitignore skips everything matched by the .gitignore at the source root.
	RespectGitignore bool
}

// Finder lists markdown files in a stable order: within each directory markdown files
// come first, then subdirectories, both alphabetically.
type Finder struct {
	opts   Options
	logger *slog.Logger
}

func NewFinder(opts Options, logger *slog.Logger) *Finder {
	return &Finder{opts: opts, logger: logger}
}

// Find returns the markdown files below srcPath, or srcPath itself when it is a file.
func (f *Finder) Find(srcPath string) ([]string, error) {
	info, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, srcPath)
		}
		return nil, fmt.Errorf("failed to stat %q: %w", srcPath, err)
	}
	if !info.IsDir() {
		return []string{srcPath}, nil
	}

	var matcher gitignore.Matcher
	if f.opts.RespectGitignore {
		matcher, err = loadGitignore(srcPath)
		if err != nil {
			return nil, err
		}
	}

	w := &walker{
		root:       srcPath,
		recursive:  f.opts.Recursive,
		exclusions: cleanAll(f.opts.Exclusions),
		matcher:    matcher,
		logger:     f.logger,
	}
	return w.walk(srcPath)
}

type walker struct {
	root       string
	recursive  bool
	exclusions []string
	matcher    gitignore.Matcher
	logger     *slog.Logger
}

func (w *walker) walk(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		mi, mj := isMarkdown(entries[i]), isMarkdown(entries[j])
		if mi != mj {
			return mi
		}
		return entries[i].Name() < entries[j].Name()
	})

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if w.excluded(path) {
			w.logger.Debug("skipping excluded path", "path", path)
			continue
		}
		if w.ignored(path, entry.IsDir()) {
			w.logger.Debug("skipping gitignored path", "path", path)
			continue
		}

		if entry.IsDir() {
			if !w.recursive {
				continue
			}
			sub, err := w.walk(path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}

		if isMarkdown(entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (w *walker) excluded(path string) bool {
	for _, ex := range w.exclusions {
		if path == ex || strings.HasPrefix(path, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *walker) ignored(path string, isDir bool) bool {
	if w.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

func isMarkdown(entry os.DirEntry) bool {
	return !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), markdownExt)
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

func loadGitignore(root string) (gitignore.Matcher, error) {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return gitignore.NewMatcher(nil), nil
		}
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse .gitignore: %w", err)
	}
	return gitignore.NewMatcher(patterns), nil
}
