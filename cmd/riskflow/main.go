// Command riskflow lays out and renders conservation risk flow diagrams.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/riskflow/internal/cli"
	"github.com/matzehuels/riskflow/pkg/errors"
)

// Process exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.IsClientError(err) {
		return exitBadInput
	}
	return exitFailure
}
