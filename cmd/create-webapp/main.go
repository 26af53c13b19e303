package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vango-dev/create-webapp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp().rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}
