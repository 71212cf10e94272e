package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/sevigo/md2poui/internal/config"
	"github.com/sevigo/md2poui/internal/menu"
	"github.com/sevigo/md2poui/internal/wire"
)

var menuCmd = &cobra.Command{
	Use:   "menu <source>",
	Short: "Print the menu tree built from the markdown files as JSON",
	Long: `Print the navigation menu the conversion would generate, without writing any file.

Nodes have a label, a link and, when nested directories are kept (--flat-dirs=false),
children.`,
	Args: cobra.ExactArgs(1),
	RunE: runMenu,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	opts, err := config.FromViper(cfg)
	if err != nil {
		return err
	}
	opts.DryRun = true
	opts.Home = false
	opts.CreateHelpers = false
	opts.CopyExternalFiles = false

	conv, err := wire.InitializeConverter(args[0], ".", opts, io.Discard)
	if err != nil {
		return err
	}

	res, err := conv.Execute(cmd.Context())
	if err != nil {
		return err
	}

	nodes := res.Menu
	if nodes == nil {
		nodes = []menu.Node{}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodes)
}
