package wire

import (
	"io"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/md2poui/internal/config"
	"github.com/sevigo/md2poui/internal/converter"
	"github.com/sevigo/md2poui/internal/discovery"
	"github.com/sevigo/md2poui/internal/logger"
	"github.com/sevigo/md2poui/internal/templates"
)

// Source and Destination tell the two path arguments of a conversion apart.
type (
	Source      string
	Destination string
)

var ConverterSet = wire.NewSet(
	templates.NewManager,
	wire.Struct(new(converter.Deps), "*"),
	provideConverter,
	provideLoggerConfig,
	provideSlogLogger,
	provideFinder,
	provideRendererFactory,
	provideFileSystem,
)

// InitializeConverter builds a converter for src and dest. Logs go to logOut, or to the
// output named in opts.Logging when logOut is nil.
func InitializeConverter(src, dest string, opts *config.Options, logOut io.Writer) (*converter.Converter, error) {
	return initializeConverter(Source(src), Destination(dest), opts, logOut)
}

func provideConverter(src Source, dest Destination, opts *config.Options, deps converter.Deps) (*converter.Converter, error) {
	return converter.New(string(src), string(dest), opts, deps)
}

func provideLoggerConfig(opts *config.Options) logger.Config {
	return opts.Logging
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

func provideFinder(opts *config.Options, logger *slog.Logger) converter.Finder {
	return discovery.NewFinder(discovery.Options{
		Recursive:        opts.Recursive,
		Exclusions:       opts.Exclusions,
		RespectGitignore: opts.RespectGitignore,
	}, logger)
}

func provideRendererFactory() converter.RendererFactory {
	return converter.NewRenderer
}

func provideFileSystem(opts *config.Options, logger *slog.Logger) converter.FileSystem {
	if opts.DryRun {
		return converter.NewDryRunFileSystem(logger)
	}
	return converter.OSFileSystem{}
}
