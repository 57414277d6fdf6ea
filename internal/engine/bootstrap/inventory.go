package bootstrap

import (
	"context"

	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// probeLimit bounds concurrent presence checks.
const probeLimit = 8

// Inspect reports whether the toolchain and each package binary resolve on
// PATH, together with the last receipt of every package. It changes nothing.
func (b *Bootstrapper) Inspect(ctx context.Context, m *domain.Manifest) (*domain.Inventory, error) {
	inv := &domain.Inventory{
		Toolchain: m.Toolchain.Binary,
		Packages:  make([]domain.PackageStatus, len(m.Packages)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeLimit)

	g.Go(func() error {
		present, err := b.installer.CheckPresence(gctx, m.Toolchain, m.Toolchain.Binary)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "presence check failed"), "toolchain", m.Toolchain.Binary)
		}
		inv.ToolchainPresent = present
		return nil
	})

	for i, ref := range m.Packages {
		g.Go(func() error {
			onPath, err := b.installer.CheckPresence(gctx, m.Toolchain, ref.BinaryName())
			if err != nil {
				return zerr.With(zerr.Wrap(err, "presence check failed"), "package", ref.Raw)
			}

			receipt, err := b.store.Get(ref.Raw)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read receipt"), "package", ref.Raw)
			}

			inv.Packages[i] = domain.PackageStatus{
				Package: ref,
				OnPath:  onPath,
				Receipt: receipt,
				Stale:   receipt != nil && receipt.Fingerprint != m.Fingerprint,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inv, nil
}
