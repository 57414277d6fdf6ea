// Package app implements the application layer for deps.
package app

import (
	"context"

	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/deps/internal/engine/bootstrap"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	engine       *bootstrap.Bootstrapper
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, engine *bootstrap.Bootstrapper, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		engine:       engine,
		logger:       log,
	}
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	// ConfigPath is the manifest to load. Empty means deps.yaml in the
	// working directory, falling back to the built-in manifest.
	ConfigPath string
	DryRun     bool
	FailFast   bool
}

// Install ensures the toolchain is present and installs every manifest package.
// The report is returned even when the run fails, unless the manifest itself
// could not be loaded.
func (a *App) Install(ctx context.Context, opts InstallOptions) (*domain.Report, error) {
	m, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	return a.engine.Run(ctx, m, bootstrap.Options{
		DryRun:   opts.DryRun,
		FailFast: opts.FailFast,
	})
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	ConfigPath string
}

// Status reports the toolchain and package state without changing anything.
func (a *App) Status(ctx context.Context, opts StatusOptions) (*domain.Inventory, error) {
	m, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	inv, err := a.engine.Inspect(ctx, m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to inspect packages")
	}
	return inv, nil
}

func (a *App) load(path string) (*domain.Manifest, error) {
	m, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.logger.Debug("using manifest " + m.Source)
	return m, nil
}
