// Package main is quotectl, a terminal client for the quotes API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newQuoteAPI).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
