package ports

import "go.trai.ch/stamp/internal/core/domain"

// ConfigLoader loads and validates the asset configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns the
	// validated asset definitions. Validation failures are fatal and
	// must prevent the engine from starting.
	Load(path string) ([]domain.Asset, error)
}
