// Package toolchain implements ports.Installer on top of the command executor.
package toolchain

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/deps/internal/adapters/shell"
	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer runs the package manager and the toolchain's install subcommand.
type Installer struct {
	executor ports.Executor
	environ  func() []string
}

// Option configures an Installer.
type Option func(*Installer)

// WithEnviron replaces the environment used for presence checks.
func WithEnviron(fn func() []string) Option {
	return func(i *Installer) {
		i.environ = fn
	}
}

// NewInstaller creates a new Installer.
func NewInstaller(executor ports.Executor, opts ...Option) *Installer {
	i := &Installer{
		executor: executor,
		environ:  os.Environ,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CheckPresence reports whether name resolves to an executable on the PATH
// the toolchain's commands would see.
func (i *Installer) CheckPresence(ctx context.Context, tc domain.Toolchain, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if name == "" {
		return false, nil
	}

	if _, err := shell.LookPath(name, shell.ResolveEnvironment(i.environ(), tc.Env)); err != nil {
		return false, nil //nolint:nilerr // not resolvable is an answer, not a failure
	}
	return true, nil
}

// Bootstrap installs the toolchain with the configured package manager command.
func (i *Installer) Bootstrap(ctx context.Context, tc domain.Toolchain) error {
	cmd := tc.BootstrapCommand()
	if len(cmd.Args) == 0 {
		return zerr.With(domain.ErrBootstrapFailed, "reason", "no bootstrap command configured")
	}

	if err := i.executor.Execute(ctx, cmd); err != nil {
		bootErr := zerr.With(err, "toolchain", tc.Binary)
		return errors.Join(domain.ErrBootstrapFailed, zerr.With(bootErr, "package_manager", tc.PackageManager()))
	}
	return nil
}

// InstallPackage runs the toolchain install subcommand with ref as its only extra argument.
func (i *Installer) InstallPackage(ctx context.Context, tc domain.Toolchain, ref domain.PackageRef) error {
	if len(tc.Install) == 0 {
		return zerr.With(domain.ErrPackageInstallFailed, "reason", "no install command configured")
	}

	if err := i.executor.Execute(ctx, tc.InstallCommand(ref)); err != nil {
		return errors.Join(domain.ErrPackageInstallFailed, zerr.With(err, "package", ref.Raw))
	}
	return nil
}
