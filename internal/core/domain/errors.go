package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPackageRef is returned when a package identifier is syntactically invalid.
	ErrInvalidPackageRef = zerr.New("invalid package identifier")

	// ErrInvalidManifest is returned when the manifest fails validation.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrManifestNotFound is returned when an explicitly requested manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrPackageManagerMissing is returned when the toolchain is absent and the
	// package manager needed to install it cannot be found either.
	ErrPackageManagerMissing = zerr.New("package manager not found")

	// ErrBootstrapFailed is returned when the package manager fails to install the toolchain.
	ErrBootstrapFailed = zerr.New("toolchain bootstrap failed")

	// ErrToolchainUnavailable is returned when the toolchain is still not on PATH after bootstrap.
	ErrToolchainUnavailable = zerr.New("toolchain unavailable after bootstrap")

	// ErrPackageInstallFailed is returned when one or more package installs fail.
	ErrPackageInstallFailed = zerr.New("package install failed")

	// ErrInstallAborted is returned when the install loop stops early under the abort policy.
	ErrInstallAborted = zerr.New("install aborted")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when asked to execute a command without arguments.
	ErrEmptyCommand = zerr.New("empty command")
)
