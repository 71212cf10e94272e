package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// NewLogger initializes a new slog logger based on the provided configuration.
// A non-nil output takes precedence over cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	var handler slog.Handler

	if output == nil {
		switch cfg.Output {
		case "stdout":
			output = os.Stdout
		case "file":
			file, err := os.OpenFile("md2poui.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
				output = os.Stderr
			} else {
				output = file
			}
		default:
			// stdout carries command output such as the menu JSON.
			output = os.Stderr
		}
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = new(slog.Level)
	}

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	case "text":
		fallthrough
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}
