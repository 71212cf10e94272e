package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/md2poui/internal/menu"
)

func TestMenuCommand(t *testing.T) {
	src := t.TempDir()
	for rel, content := range map[string]string{
		"zoo/zoo.md":         "# Zoo\n",
		"zoo/zebra/zebra.md": "# Zebra\n",
	} {
		path := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"menu", "--flat-dirs=false", "--parent-route-path", "guide", src})
	require.NoError(t, rootCmd.Execute())

	var nodes []menu.Node
	require.NoError(t, json.Unmarshal(out.Bytes(), &nodes))
	assert.Equal(t, []menu.Node{
		{Label: "Zoo", Link: "guide/zoo", Children: []menu.Node{{Label: "Zebra", Link: "guide/zebra"}}},
	}, nodes)
}
