package ports

import (
	"context"

	"go.trai.ch/deps/internal/core/domain"
)

// Installer isolates every change to the host's installed software.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// CheckPresence reports whether the named executable resolves on the PATH
	// the toolchain's commands run with: the process PATH behind any PATH from
	// the toolchain env. It has no side effects.
	CheckPresence(ctx context.Context, toolchain domain.Toolchain, name string) (bool, error)

	// Bootstrap installs the toolchain itself through the system package manager.
	Bootstrap(ctx context.Context, toolchain domain.Toolchain) error

	// InstallPackage runs the toolchain's install subcommand for a single package.
	InstallPackage(ctx context.Context, toolchain domain.Toolchain, ref domain.PackageRef) error
}
