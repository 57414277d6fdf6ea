package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/shell"
)

// Depsfile represents the structure of the deps.yaml manifest.
type Depsfile struct {
	Version   string       `yaml:"version"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	OnFailure string       `yaml:"onFailure"`
	Packages  []string     `yaml:"packages"`
}

// ToolchainDTO represents the toolchain section of the manifest.
type ToolchainDTO struct {
	Binary    *string           `yaml:"binary"`
	Bootstrap *CommandDTO       `yaml:"bootstrap"`
	Install   *CommandDTO       `yaml:"install"`
	Env       map[string]string `yaml:"env"`
}

// CommandDTO is an argv given either as a YAML list or as a single
// shell-quoted string such as `brew install "go@1.24"`. Variable
// references in the string form are kept literally so the manifest
// fingerprint does not depend on the caller's environment.
type CommandDTO []string

func literalVar(name string) string { return "$" + name }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CommandDTO) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*c = nil
			return nil
		}
		fields, err := shell.Fields(value.Value, literalVar)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to split command"), "command", value.Value)
		}
		*c = fields
		return nil
	case yaml.SequenceNode:
		var args []string
		if err := value.Decode(&args); err != nil {
			return err
		}
		*c = args
		return nil
	default:
		return zerr.With(zerr.New("command must be a string or a list of strings"), "line", value.Line)
	}
}
