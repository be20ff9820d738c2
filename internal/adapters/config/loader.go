// Package config provides the configuration loader for stamp.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// defaultWorkDirRoot holds per-asset working directories for assets that
// do not configure one.
const defaultWorkDirRoot = ".stamp"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a configuration file from the given path and returns the
// validated asset definitions, sorted by name for deterministic iteration.
func (l *Loader) Load(path string) ([]domain.Asset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var stampfile Stampfile
	if err := yaml.Unmarshal(data, &stampfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if len(stampfile.Assets) == 0 {
		return nil, zerr.With(zerr.New("no assets configured"), "path", path)
	}

	baseDir := stampfile.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	assets := make([]domain.Asset, 0, len(stampfile.Assets))
	for name, dto := range stampfile.Assets {
		asset := toAsset(name, baseDir, dto)
		if err := asset.Validate(); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

// toAsset maps a DTO onto the domain type, applying defaults for omitted
// fields.
func toAsset(name, baseDir string, dto AssetDTO) domain.Asset {
	asset := domain.Asset{
		Name:              name,
		Includes:          dto.Include,
		BaseDir:           baseDir,
		WorkDir:           dto.WorkDir,
		Output:            dto.Output,
		ChecksumLength:    dto.ChecksumLength,
		LockWait:          time.Duration(dto.LockWaitSeconds) * time.Second,
		MaxFingerprintAge: time.Duration(dto.FingerprintMaxAgeSecs) * time.Second,
		Persist:           dto.Persist,
	}

	if asset.WorkDir == "" {
		asset.WorkDir = filepath.Join(defaultWorkDirRoot, name)
	}
	if asset.ChecksumLength == 0 {
		asset.ChecksumLength = domain.DefaultChecksumLength
	}
	if dto.LockWaitSeconds == 0 {
		asset.LockWait = domain.DefaultLockWait
	}
	return asset
}
