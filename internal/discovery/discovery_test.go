package discovery

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{
		"b.md",
		"a.md",
		"notes.txt",
		"zoo/zoo.md",
		"zoo/zebra/zebra.md",
		"zoo/lion/lion.md",
		"private/secret.md",
		"drafts/draft.md",
		".hidden/hidden.md",
	} {
		writeFile(t, root, rel, "# "+rel)
	}
	return root
}

func rels(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestFinder_Find(t *testing.T) {
	root := newTree(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "Recursive walk puts markdown first",
			opts: Options{Recursive: true},
			want: []string{
				"a.md",
				"b.md",
				"drafts/draft.md",
				"private/secret.md",
				"zoo/zoo.md",
				"zoo/lion/lion.md",
				"zoo/zebra/zebra.md",
			},
		},
		{
			name: "Non recursive walk stays at the root",
			opts: Options{Recursive: false},
			want: []string{"a.md", "b.md"},
		},
		{
			name: "Exclusions skip files and directories",
			opts: Options{
				Recursive:  true,
				Exclusions: []string{filepath.Join(root, "private"), filepath.Join(root, "b.md"), filepath.Join(root, "zoo", "lion") + "/"},
			},
			want: []string{
				"a.md",
				"drafts/draft.md",
				"zoo/zoo.md",
				"zoo/zebra/zebra.md",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := NewFinder(tt.opts, logger).Find(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(t, root, files))
		})
	}
}

func TestFinder_Find_Gitignore(t *testing.T) {
	root := newTree(t)
	writeFile(t, root, ".gitignore", "# local\ndrafts/\nzoo/lion\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	files, err := NewFinder(Options{Recursive: true, RespectGitignore: true}, logger).Find(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.md",
		"b.md",
		"private/secret.md",
		"zoo/zoo.md",
		"zoo/zebra/zebra.md",
	}, rels(t, root, files))

	files, err = NewFinder(Options{Recursive: true}, logger).Find(root)
	require.NoError(t, err)
	assert.Contains(t, rels(t, root, files), "drafts/draft.md")
}

func TestFinder_Find_MissingGitignore(t *testing.T) {
	root := newTree(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	files, err := NewFinder(Options{Recursive: true, RespectGitignore: true}, logger).Find(root)
	require.NoError(t, err)
	assert.Len(t, files, 7)
}

func TestFinder_Find_SingleFile(t *testing.T) {
	root := newTree(t)
	file := filepath.Join(root, "zoo", "zoo.md")

	files, err := NewFinder(Options{}, slog.Default()).Find(file)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestFinder_Find_Missing(t *testing.T) {
	_, err := NewFinder(Options{}, slog.Default()).Find(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrSourceNotFound)
}
