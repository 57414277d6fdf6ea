package domain

import (
	"slices"
)

// FailurePolicy decides what happens after a package install fails.
type FailurePolicy string

const (
	// FailureContinue installs the remaining packages and reports all failures at the end.
	FailureContinue FailurePolicy = "continue"
	// FailureAbort stops at the first failed package.
	FailureAbort FailurePolicy = "abort"
)

// Valid reports whether p is a known policy.
func (p FailurePolicy) Valid() bool {
	return p == FailureContinue || p == FailureAbort
}

// Toolchain describes the compiler toolchain and how to obtain it.
type Toolchain struct {
	// Binary is the executable whose presence on PATH is checked, e.g. "go".
	Binary string

	// Bootstrap is the package manager command that installs the toolchain,
	// e.g. ["brew", "install", "go"].
	Bootstrap []string

	// Install is the argv prefix of the toolchain's own install subcommand,
	// e.g. ["go", "install"]. The package identifier is appended as the only
	// extra argument.
	Install []string

	// Env is layered over the process environment for every command.
	Env map[string]string
}

// PackageManager returns the program the bootstrap command runs.
func (t Toolchain) PackageManager() string {
	return t.BootstrapCommand().Program()
}

// BootstrapCommand returns the command that installs the toolchain.
func (t Toolchain) BootstrapCommand() Command {
	return Command{Args: slices.Clone(t.Bootstrap), Env: t.Env}
}

// InstallCommand returns the command that installs a single package.
func (t Toolchain) InstallCommand(ref PackageRef) Command {
	args := make([]string, 0, len(t.Install)+1)
	args = append(args, t.Install...)
	args = append(args, ref.Raw)
	return Command{Args: args, Env: t.Env}
}

// Manifest is the full description of what a run installs.
type Manifest struct {
	// Source is the file the manifest was read from, empty for the built-in default.
	Source string

	Toolchain Toolchain

	// Packages are installed in this order, each exactly once per run.
	Packages []PackageRef

	OnFailure FailurePolicy

	// Fingerprint identifies the manifest content; it changes whenever the
	// toolchain commands or the package list change.
	Fingerprint string
}
