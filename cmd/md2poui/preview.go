package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a markdown file in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(previewWidth),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}

		out, err := r.Render(string(src))
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", args[0], err)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 100, "word wrap width")
	rootCmd.AddCommand(previewCmd)
}
