package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sevigo/md2poui/internal/config"
	"github.com/sevigo/md2poui/internal/converter"
	"github.com/sevigo/md2poui/internal/wire"
)

// cfg collects flags and MD2POUI_* environment variables for config.FromViper.
var cfg = viper.New()

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "md2poui <source> <destination>",
	Short: "Convert markdown documentation into PO UI Angular components",
	Long: `Convert a markdown file or a directory of markdown files into Angular components.

Every markdown file becomes a component whose view renders the document with PO UI
(or THF) styling. A module, a routing module and a service exposing the navigation
menu are generated next to the components.

Examples:
  md2poui docs src/app/docs
  md2poui --flat-dirs=false --module-name guides docs src/app/guides
  md2poui --config md2poui.yml --dry-run docs src/app/docs`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.String("config", "", "YAML options file")
	flags.StringSlice("exclusions", defaults.Exclusions, "files or directories to skip")
	flags.String("highlight-class-name", defaults.HighlightClassName, "CSS class added to code blocks")
	flags.Bool("flat-dirs", defaults.FlatDirs, "write every component directly below the destination and keep the menu flat")
	flags.Bool("recursive", defaults.Recursive, "descend into subdirectories of the source")
	flags.Bool("create-helpers", defaults.CreateHelpers, "generate module, routing and service files")
	flags.Bool("home", defaults.Home, "generate a home component with the menu")
	flags.String("module-name", defaults.ModuleName, "name of the generated Angular module")
	flags.String("parent-route-path", defaults.ParentRoutePath, "route prefix of menu links")
	flags.Bool("copy-external-files", defaults.CopyExternalFiles, "copy local images and files referenced by the documents")
	flags.String("resource-folder-name", defaults.ResourceFolderName, "destination folder for copied files")
	flags.String("resource-path-name", defaults.ResourcePathName, "path used by views to reference copied files")
	flags.Bool("portinari-ui", defaults.PortinariUI, "generate PO UI components (false generates THF components)")
	flags.Bool("respect-gitignore", defaults.RespectGitignore, "skip files matched by the source .gitignore")
	flags.Bool("dry-run", defaults.DryRun, "report what would be written without writing")
	flags.String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Logging.Format, "log format (text, json)")

	bindFlags(flags, map[string]string{
		config.KeyConfig:             "config",
		config.KeyExclusions:         "exclusions",
		config.KeyHighlightClassName: "highlight-class-name",
		config.KeyFlatDirs:           "flat-dirs",
		config.KeyRecursive:          "recursive",
		config.KeyCreateHelpers:      "create-helpers",
		config.KeyHome:               "home",
		config.KeyModuleName:         "module-name",
		config.KeyParentRoutePath:    "parent-route-path",
		config.KeyCopyExternalFiles:  "copy-external-files",
		config.KeyResourceFolderName: "resource-folder-name",
		config.KeyResourcePathName:   "resource-path-name",
		config.KeyPortinariUI:        "portinari-ui",
		config.KeyRespectGitignore:   "respect-gitignore",
		config.KeyDryRun:             "dry-run",
		config.KeyLogLevel:           "log-level",
		config.KeyLogFormat:          "log-format",
	})
}

func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := cfg.BindPFlag(key, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
			os.Exit(1)
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := config.FromViper(cfg)
	if err != nil {
		return err
	}

	conv, err := wire.InitializeConverter(args[0], args[1], opts, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize converter: %w", err)
	}

	start := time.Now()
	res, err := conv.Execute(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), args[1], opts, res, time.Since(start))
	return nil
}

func printSummary(w io.Writer, dest string, opts *config.Options, res *converter.Result, elapsed time.Duration) {
	_, _ = titleColor.Fprintf(w, "\n%s module (%s)\n\n", opts.ModuleName, opts.Theme())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range res.Components {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			successColor.Sprint("✓"),
			c.Title,
			dimColor.Sprint(filepath.ToSlash(filepath.Join(dest, c.Path, c.Name+".component.html"))))
	}
	_ = tw.Flush()

	if len(res.Components) == 0 {
		_, _ = warnColor.Fprintln(w, "  no markdown files found")
	}

	_, _ = fmt.Fprintf(w, "\n%d components, %d files in %s\n", len(res.Components), len(res.Written), elapsed.Round(time.Millisecond))
	if opts.DryRun {
		_, _ = warnColor.Fprintln(w, "dry run: nothing was written")
	}
}
