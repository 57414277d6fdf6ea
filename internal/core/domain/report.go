package domain

import "time"

// StepStatus is the outcome of one step of a run.
type StepStatus string

const (
	// StepPlanned marks a step that a dry run would execute.
	StepPlanned StepStatus = "planned"
	// StepInstalled marks a successful install.
	StepInstalled StepStatus = "installed"
	// StepFailed marks a failed install.
	StepFailed StepStatus = "failed"
	// StepSkipped marks a package never attempted because the run stopped early.
	StepSkipped StepStatus = "skipped"
)

// PackageOutcome is the result of one package install.
type PackageOutcome struct {
	Package  PackageRef
	Command  Command
	Status   StepStatus
	Err      error
	Duration time.Duration
}

// Report summarizes a run.
type Report struct {
	DryRun bool

	// ToolchainPresent is the result of the initial presence check.
	ToolchainPresent bool

	// Bootstrapped is true when the bootstrap command ran successfully.
	Bootstrapped bool

	// BootstrapFailed is true when the bootstrap command ran and failed.
	BootstrapFailed bool

	// BootstrapCommand is the command that ran, or would run in a dry run.
	BootstrapCommand Command

	Packages []PackageOutcome
	Duration time.Duration
}

// Count returns the number of package outcomes with the given status.
func (r *Report) Count(status StepStatus) int {
	n := 0
	for _, p := range r.Packages {
		if p.Status == status {
			n++
		}
	}
	return n
}

// PackageStatus is the observed state of one manifest package.
type PackageStatus struct {
	Package PackageRef

	// OnPath is true when the package's binary resolves on PATH.
	OnPath bool

	// Receipt is the last recorded install attempt, nil if never attempted.
	Receipt *Receipt

	// Stale is true when the receipt was written under a different manifest.
	Stale bool
}

// Inventory is the read-only status of a manifest on this machine.
type Inventory struct {
	Toolchain        string
	ToolchainPresent bool
	Packages         []PackageStatus
}
