package domain

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// VersionKind classifies the version selector of a package identifier.
type VersionKind string

const (
	// VersionNone means the identifier carries no "@version" suffix.
	VersionNone VersionKind = "none"
	// VersionQuery is one of the module query keywords (latest, upgrade, patch).
	VersionQuery VersionKind = "query"
	// VersionSemantic is a semantic version or version prefix such as "v1.2.3" or "v1.2".
	VersionSemantic VersionKind = "semver"
	// VersionRevision is anything else: a branch name, tag or commit hash.
	VersionRevision VersionKind = "revision"
)

var versionQueries = map[string]bool{
	"latest":  true,
	"upgrade": true,
	"patch":   true,
}

// PackageRef is a single installable unit for the toolchain's install subcommand,
// e.g. "github.com/x-motemen/gore/cmd/gore@latest".
type PackageRef struct {
	// Raw is the identifier exactly as configured. It is the only value ever
	// handed to the installer.
	Raw string

	// Path is the part before the version selector.
	Path string

	// Version is the selector after "@", empty when absent.
	Version string

	// Kind classifies Version.
	Kind VersionKind

	// Semver is set when Kind is VersionSemantic.
	Semver *semver.Version
}

// ParsePackageRef validates a package identifier and splits it into path and version.
// Validation is purely syntactic; it never consults the network or the toolchain.
func ParsePackageRef(raw string) (PackageRef, error) {
	invalid := func(reason string) (PackageRef, error) {
		err := zerr.With(ErrInvalidPackageRef, "identifier", raw)
		return PackageRef{}, zerr.With(err, "reason", reason)
	}

	if raw == "" {
		return invalid("empty identifier")
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return invalid("identifier contains whitespace")
	}
	if strings.HasPrefix(raw, "-") {
		return invalid("identifier must not start with '-'")
	}
	if strings.Count(raw, "@") > 1 {
		return invalid("identifier contains more than one '@'")
	}

	path, version, hasVersion := strings.Cut(raw, "@")
	if path == "" {
		return invalid("empty package path")
	}
	if strings.HasSuffix(path, "/") || strings.Contains(path, "//") {
		return invalid("malformed package path")
	}

	ref := PackageRef{
		Raw:  raw,
		Path: path,
		Kind: VersionNone,
	}
	if !hasVersion {
		return ref, nil
	}
	if version == "" {
		return invalid("empty version after '@'")
	}

	ref.Version = version
	switch {
	case versionQueries[version]:
		ref.Kind = VersionQuery
	case strings.HasPrefix(version, "v"):
		if v, err := semver.NewVersion(version); err == nil {
			ref.Kind = VersionSemantic
			ref.Semver = v
		} else {
			ref.Kind = VersionRevision
		}
	default:
		ref.Kind = VersionRevision
	}

	return ref, nil
}

// MustParsePackageRef is like ParsePackageRef but panics on invalid input.
// It is intended for identifiers compiled into the binary.
func MustParsePackageRef(raw string) PackageRef {
	ref, err := ParsePackageRef(raw)
	if err != nil {
		panic(err)
	}
	return ref
}

// String returns the raw identifier.
func (p PackageRef) String() string {
	return p.Raw
}

// BinaryName returns the name of the command the package installs.
// It is the last element of the path, skipping a trailing major-version
// element such as "v2".
func (p PackageRef) BinaryName() string {
	elems := strings.Split(p.Path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersionSuffix(name) {
		name = elems[len(elems)-2]
	}
	return name
}

func isMajorVersionSuffix(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s[1] != '0'
}
