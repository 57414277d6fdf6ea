package ports

import "go.trai.ch/deps/internal/core/domain"

// ConfigLoader defines the interface for loading the install manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest at path. An empty path means the default
	// location, falling back to the built-in manifest when no file exists.
	Load(path string) (*domain.Manifest, error)
}
