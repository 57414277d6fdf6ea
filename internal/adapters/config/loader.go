// Package config provides the manifest loader for deps.
package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest looked up in the working directory when no path is given.
const DefaultFilename = "deps.yaml"

// BuiltinSource is the Source of the manifest compiled into the binary.
const BuiltinSource = "built-in"

//go:embed default.yaml
var defaultManifest []byte

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the manifest at path. With an empty path it tries DefaultFilename
// in the working directory and falls back to the built-in manifest.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	if path == "" {
		data, err := os.ReadFile(DefaultFilename)
		switch {
		case err == nil:
			return Parse(data, DefaultFilename)
		case errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("no " + DefaultFilename + " found, using built-in manifest")
			return Default()
		default:
			return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", DefaultFilename)
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	return Parse(data, path)
}

// Default returns the built-in manifest.
func Default() (*domain.Manifest, error) {
	return Parse(defaultManifest, BuiltinSource)
}

// Parse decodes and validates a manifest. source names it in errors.
func Parse(data []byte, source string) (*domain.Manifest, error) {
	var depsfile Depsfile
	if err := yaml.Unmarshal(data, &depsfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", source)
	}

	m, err := toManifest(&depsfile)
	if err != nil {
		return nil, zerr.With(err, "path", source)
	}
	m.Source = source
	m.Fingerprint = Fingerprint(m)
	return m, nil
}

func toManifest(d *Depsfile) (*domain.Manifest, error) {
	invalid := func(reason string) error {
		return errors.Join(domain.ErrInvalidManifest, zerr.New(reason))
	}

	if d.Version != "" && d.Version != "1" {
		return nil, zerr.With(invalid("unsupported version"), "version", d.Version)
	}

	tc := domain.Toolchain{Binary: "go", Env: d.Toolchain.Env}
	if d.Toolchain.Binary != nil {
		tc.Binary = strings.TrimSpace(*d.Toolchain.Binary)
		if tc.Binary == "" {
			return nil, invalid("toolchain binary must not be empty")
		}
	}
	if d.Toolchain.Bootstrap != nil {
		if len(*d.Toolchain.Bootstrap) == 0 {
			return nil, invalid("bootstrap command must not be empty")
		}
		tc.Bootstrap = *d.Toolchain.Bootstrap
	} else {
		tc.Bootstrap = []string{"brew", "install", tc.Binary}
	}
	if d.Toolchain.Install != nil {
		if len(*d.Toolchain.Install) == 0 {
			return nil, invalid("install command must not be empty")
		}
		tc.Install = *d.Toolchain.Install
	} else {
		tc.Install = []string{tc.Binary, "install"}
	}
	if strings.ContainsAny(tc.Binary, " \t/") {
		return nil, zerr.With(invalid("toolchain binary must be a bare command name"), "binary", tc.Binary)
	}
	for k := range tc.Env {
		if k == "" || strings.Contains(k, "=") {
			return nil, zerr.With(invalid("malformed environment variable name"), "name", k)
		}
	}

	policy := domain.FailurePolicy(d.OnFailure)
	if policy == "" {
		policy = domain.FailureContinue
	}
	if !policy.Valid() {
		return nil, zerr.With(invalid("unknown failure policy"), "onFailure", d.OnFailure)
	}

	seen := make(map[string]bool, len(d.Packages))
	packages := make([]domain.PackageRef, 0, len(d.Packages))
	for _, raw := range d.Packages {
		ref, err := domain.ParsePackageRef(raw)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidManifest, err)
		}
		if seen[ref.Raw] {
			return nil, zerr.With(invalid("duplicate package"), "package", ref.Raw)
		}
		seen[ref.Raw] = true
		packages = append(packages, ref)
	}

	return &domain.Manifest{
		Toolchain: tc,
		Packages:  packages,
		OnFailure: policy,
	}, nil
}
