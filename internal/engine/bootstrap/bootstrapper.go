// Package bootstrap implements the toolchain bootstrap and package install sequence.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/deps/internal/adapters/telemetry" //nolint:depguard // no-op default
	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options tune a single run.
type Options struct {
	// DryRun reports what would run without invoking the installer or writing receipts.
	DryRun bool

	// FailFast forces the abort policy regardless of the manifest.
	FailFast bool
}

// Bootstrapper ensures the toolchain is present and installs the manifest packages.
type Bootstrapper struct {
	installer ports.Installer
	store     ports.ReceiptStore
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time
}

// New creates a new Bootstrapper. A nil telemetry records nothing.
func New(
	installer ports.Installer,
	store ports.ReceiptStore,
	tel ports.Telemetry,
	logger ports.Logger,
) *Bootstrapper {
	if tel == nil {
		tel = telemetry.NewNoOp()
	}
	return &Bootstrapper{
		installer: installer,
		store:     store,
		telemetry: tel,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used for testing.
func (b *Bootstrapper) WithClock(now func() time.Time) *Bootstrapper {
	b.now = now
	return b
}

// Run checks for the toolchain, bootstraps it when absent, then installs each
// package in manifest order, exactly once. The returned report is never nil.
//
// A bootstrap failure stops the run before any package is installed. Package
// failures are aggregated under the continue policy; under abort the first
// failure stops the loop and the remaining packages are marked skipped.
func (b *Bootstrapper) Run(ctx context.Context, m *domain.Manifest, opts Options) (*domain.Report, error) {
	start := b.now()
	report := &domain.Report{
		DryRun:           opts.DryRun,
		BootstrapCommand: m.Toolchain.BootstrapCommand(),
		Packages:         make([]domain.PackageOutcome, 0, len(m.Packages)),
	}
	defer func() {
		report.Duration = b.now().Sub(start)
	}()

	if err := b.ensureToolchain(ctx, m.Toolchain, opts, report); err != nil {
		report.Packages = append(report.Packages, skipped(m, m.Packages)...)
		return report, err
	}

	policy := m.OnFailure
	if opts.FailFast {
		policy = domain.FailureAbort
	}

	var errs error
	for i, ref := range m.Packages {
		outcome := domain.PackageOutcome{
			Package: ref,
			Command: m.Toolchain.InstallCommand(ref),
		}

		if opts.DryRun {
			outcome.Status = domain.StepPlanned
			report.Packages = append(report.Packages, outcome)
			continue
		}

		if err := ctx.Err(); err != nil {
			report.Packages = append(report.Packages, skipped(m, m.Packages[i:])...)
			return report, errors.Join(errs, err)
		}

		outcome = b.installOne(ctx, m, outcome)
		report.Packages = append(report.Packages, outcome)

		if outcome.Err != nil {
			errs = errors.Join(errs, outcome.Err)
			if policy == domain.FailureAbort {
				report.Packages = append(report.Packages, skipped(m, m.Packages[i+1:])...)
				return report, errors.Join(domain.ErrInstallAborted, errs)
			}
		}
	}

	return report, errs
}

// ensureToolchain runs the presence check and, when needed, the bootstrap.
func (b *Bootstrapper) ensureToolchain(
	ctx context.Context,
	tc domain.Toolchain,
	opts Options,
	report *domain.Report,
) error {
	present, err := b.probe(ctx, tc, tc.Binary)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "presence check failed"), "toolchain", tc.Binary)
	}
	report.ToolchainPresent = present

	if present {
		b.logger.Info(fmt.Sprintf("%s already installed", tc.Binary))
		return nil
	}

	pm := tc.PackageManager()
	if pm == "" {
		return zerr.With(domain.ErrPackageManagerMissing, "toolchain", tc.Binary)
	}
	pmPresent, err := b.probe(ctx, tc, pm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "presence check failed"), "package_manager", pm)
	}
	if !pmPresent {
		err := zerr.With(domain.ErrPackageManagerMissing, "package_manager", pm)
		return zerr.With(err, "toolchain", tc.Binary)
	}

	if opts.DryRun {
		b.logger.Info(fmt.Sprintf("%s not found, would run: %s", tc.Binary, report.BootstrapCommand))
		return nil
	}

	b.logger.Info(fmt.Sprintf("%s not found, installing with %s", tc.Binary, pm))
	vctx, vertex := b.telemetry.Record(ctx, "bootstrap "+tc.Binary)
	if err := b.installer.Bootstrap(vctx, tc); err != nil {
		vertex.Complete(err)
		report.BootstrapFailed = true
		if errors.Is(err, domain.ErrBootstrapFailed) {
			return err
		}
		return errors.Join(domain.ErrBootstrapFailed, err)
	}
	vertex.Complete(nil)
	report.Bootstrapped = true

	present, err = b.probe(ctx, tc, tc.Binary)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "presence check failed"), "toolchain", tc.Binary)
	}
	if !present {
		return zerr.With(domain.ErrToolchainUnavailable, "toolchain", tc.Binary)
	}
	return nil
}

func (b *Bootstrapper) probe(ctx context.Context, tc domain.Toolchain, name string) (bool, error) {
	vctx, vertex := b.telemetry.Record(ctx, "check "+name, ports.WithInternal())
	present, err := b.installer.CheckPresence(vctx, tc, name)
	vertex.Complete(err)
	return present, err
}

func (b *Bootstrapper) installOne(
	ctx context.Context,
	m *domain.Manifest,
	outcome domain.PackageOutcome,
) domain.PackageOutcome {
	ref := outcome.Package
	b.logger.Info("installing " + ref.Raw)

	vctx, vertex := b.telemetry.Record(ctx, "install "+ref.Raw)
	started := b.now()
	err := b.installer.InstallPackage(vctx, m.Toolchain, ref)
	outcome.Duration = b.now().Sub(started)
	vertex.Complete(err)

	receipt := domain.Receipt{
		Package:     ref.Raw,
		Success:     err == nil,
		Fingerprint: m.Fingerprint,
		Timestamp:   started,
	}

	if err != nil {
		if !errors.Is(err, domain.ErrPackageInstallFailed) {
			err = errors.Join(domain.ErrPackageInstallFailed, zerr.With(err, "package", ref.Raw))
		}
		outcome.Status = domain.StepFailed
		outcome.Err = err
		receipt.Error = err.Error()
		b.logger.Warn("failed to install " + ref.Raw)
	} else {
		outcome.Status = domain.StepInstalled
	}

	if storeErr := b.store.Put(receipt); storeErr != nil {
		// Receipts are informational; a write failure never changes the outcome.
		b.logger.Warn(fmt.Sprintf("failed to record receipt for %s: %v", ref.Raw, storeErr))
	}

	return outcome
}

func skipped(m *domain.Manifest, refs []domain.PackageRef) []domain.PackageOutcome {
	out := make([]domain.PackageOutcome, 0, len(refs))
	for _, ref := range refs {
		out = append(out, domain.PackageOutcome{
			Package: ref,
			Command: m.Toolchain.InstallCommand(ref),
			Status:  domain.StepSkipped,
		})
	}
	return out
}
