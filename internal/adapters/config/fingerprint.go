package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/deps/internal/core/domain"
)

// Fingerprint computes a stable hash of everything that determines what a
// run installs: the toolchain commands, its environment and the package list
// in order. The failure policy is not part of it.
func Fingerprint(m *domain.Manifest) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(m.Toolchain.Binary)
	_, _ = hasher.Write([]byte{0})

	writeList(hasher, m.Toolchain.Bootstrap)
	writeList(hasher, m.Toolchain.Install)

	for _, k := range slices.Sorted(maps.Keys(m.Toolchain.Env)) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(m.Toolchain.Env[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, p := range m.Packages {
		_, _ = hasher.WriteString(p.Raw)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func writeList(hasher *xxhash.Digest, items []string) {
	for _, item := range items {
		_, _ = hasher.WriteString(item)
		_, _ = hasher.Write([]byte{0})
	}
	// Section separator
	_, _ = hasher.Write([]byte{0})
}
