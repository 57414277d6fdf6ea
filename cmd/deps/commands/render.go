package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
	"github.com/mitchellh/colorstring"
	"go.trai.ch/deps/internal/core/domain"
)

var statusMarks = map[domain.StepStatus]string{
	domain.StepPlanned:   "[cyan]planned  ",
	domain.StepInstalled: "[green]installed",
	domain.StepFailed:    "[red]failed   ",
	domain.StepSkipped:   "[yellow]skipped  ",
}

func printReport(w io.Writer, r *domain.Report, color colorstring.Colorize) {
	if r.DryRun {
		_, _ = fmt.Fprintln(w, color.Color("[bold]Plan (dry run)"))
		if r.ToolchainPresent {
			_, _ = fmt.Fprintln(w, "  toolchain present, no bootstrap")
		} else {
			_, _ = fmt.Fprintf(w, "  bootstrap  %s\n", r.BootstrapCommand)
		}
		for _, p := range r.Packages {
			_, _ = fmt.Fprintf(w, "  %s  %s  (%s)\n", color.Color(statusMarks[p.Status]), p.Command, describeVersion(p.Package))
		}
		return
	}

	switch {
	case r.Bootstrapped:
		_, _ = fmt.Fprintf(w, "bootstrapped toolchain: %s\n", r.BootstrapCommand)
	case r.BootstrapFailed:
		_, _ = fmt.Fprintf(w, "%s %s\n", color.Color("[red]toolchain bootstrap failed:"), r.BootstrapCommand)
	}
	for _, p := range r.Packages {
		line := fmt.Sprintf("  %s  %s", color.Color(statusMarks[p.Status]), p.Package.Raw)
		if p.Status == domain.StepInstalled || p.Status == domain.StepFailed {
			line += " (" + units.HumanDuration(p.Duration) + ")"
		}
		_, _ = fmt.Fprintln(w, line)
		if p.Err != nil {
			_, _ = fmt.Fprintf(w, "      %v\n", p.Err)
		}
	}

	_, _ = fmt.Fprintf(w, "%d installed, %d failed, %d skipped in %s\n",
		r.Count(domain.StepInstalled),
		r.Count(domain.StepFailed),
		r.Count(domain.StepSkipped),
		units.HumanDuration(r.Duration),
	)
}

func printInventory(w io.Writer, inv *domain.Inventory, color colorstring.Colorize, now time.Time) {
	toolchain := "[red]missing"
	if inv.ToolchainPresent {
		toolchain = "[green]present"
	}
	_, _ = fmt.Fprintf(w, "toolchain %s: %s\n", inv.Toolchain, color.Color(toolchain))

	for _, p := range inv.Packages {
		mark := "[red]missing"
		if p.OnPath {
			mark = "[green]on PATH"
		}
		_, _ = fmt.Fprintf(w, "  %s  %s  %s (%s)\n", color.Color(mark), p.Package.Raw, describeReceipt(p, now), describeVersion(p.Package))
	}
}

func describeReceipt(p domain.PackageStatus, now time.Time) string {
	if p.Receipt == nil {
		return "never installed"
	}

	verb := "installed"
	if !p.Receipt.Success {
		verb = "failed"
	}
	desc := fmt.Sprintf("%s %s ago", verb, units.HumanDuration(now.Sub(p.Receipt.Timestamp)))
	if p.Stale {
		desc += ", manifest changed since"
	}
	return desc
}

func describeVersion(ref domain.PackageRef) string {
	switch ref.Kind {
	case domain.VersionSemantic:
		desc := "pinned " + ref.Semver.Original()
		if ref.Semver.Prerelease() != "" {
			desc += ", prerelease"
		}
		return desc
	case domain.VersionQuery:
		return "tracks " + ref.Version
	case domain.VersionRevision:
		return "revision " + ref.Version
	default:
		return "toolchain default version"
	}
}
