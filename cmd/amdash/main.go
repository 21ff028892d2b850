package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pinka12/amdash/internal/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
