package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Error("md2poui failed", "error", err)
		os.Exit(1)
	}
}
