// Command radarctl renders, generates and verifies strategic alignment data
// from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Process exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "radarctl: "+err.Error())
		stop()
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
