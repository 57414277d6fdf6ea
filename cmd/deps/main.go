// Package main is the entry point for deps, the toolchain and package bootstrapper.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/deps/cmd/deps/commands"
	"go.trai.ch/deps/internal/app"
	"go.trai.ch/deps/internal/core/domain"
	_ "go.trai.ch/deps/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
// The returned cleanup function flushes telemetry and must be called once the CLI is done.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, resolveComponents))
}

func resolveComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return c, func() { _ = c.Telemetry.Close() }, nil
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Package failures are already listed in the run summary.
		if errors.Is(err, domain.ErrPackageInstallFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
