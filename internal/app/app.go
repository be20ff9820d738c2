// Package app implements the application layer for stamp.
package app

import (
	"context"
	"sync"

	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/stamp/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultConfigPath is the configuration file looked up when no --config
// flag is given.
const DefaultConfigPath = "stamp.yaml"

// AssetStatus is the serving-layer view of one asset namespace.
type AssetStatus struct {
	Name        string
	Fingerprint string
	PathSuffix  string
	Stale       bool
}

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	registry *orchestrator.Registry
	logger   ports.Logger

	mu         sync.Mutex
	configPath string
	configured bool
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, registry *orchestrator.Registry, logger ports.Logger) *App {
	return &App{
		loader:     loader,
		registry:   registry,
		logger:     logger,
		configPath: DefaultConfigPath,
	}
}

// SetConfigPath overrides the configuration file location. Must be called
// before the first operation.
func (a *App) SetConfigPath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configPath = path
}

// Build ensures the named assets (all configured assets when names is
// empty) are fresh, rebuilding concurrently where needed.
func (a *App) Build(ctx context.Context, names []string) error {
	targets, err := a.targets(names)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			fingerprint, err := target.EnsureFresh(ctx)
			if err != nil {
				return zerr.With(err, "asset", target.Asset().Name)
			}
			a.logger.Info("asset " + target.Asset().Name + " is fresh at " + fingerprint + " via " + string(target.LastTransition()))
			return nil
		})
	}
	return g.Wait()
}

// Status reports the current fingerprint and staleness of the named
// assets without triggering a rebuild.
func (a *App) Status(names []string) ([]AssetStatus, error) {
	targets, err := a.targets(names)
	if err != nil {
		return nil, err
	}

	statuses := make([]AssetStatus, 0, len(targets))
	for _, target := range targets {
		stale, err := target.Stale()
		if err != nil {
			return nil, zerr.With(err, "asset", target.Asset().Name)
		}
		statuses = append(statuses, AssetStatus{
			Name:        target.Asset().Name,
			Fingerprint: target.CurrentFingerprint(),
			PathSuffix:  target.AssetPathSuffix(),
			Stale:       stale,
		})
	}
	return statuses, nil
}

// Invalidate forces the next request for the named assets down the
// expensive path.
func (a *App) Invalidate(names []string) error {
	targets, err := a.targets(names)
	if err != nil {
		return err
	}
	for _, target := range targets {
		target.Invalidate()
		a.logger.Info("invalidated asset " + target.Asset().Name)
	}
	return nil
}

// Registry exposes the configured orchestrators to an embedding server.
func (a *App) Registry() (*orchestrator.Registry, error) {
	if err := a.ensureConfigured(); err != nil {
		return nil, err
	}
	return a.registry, nil
}

// targets resolves the requested asset names to orchestrators, defaulting
// to all configured assets.
func (a *App) targets(names []string) ([]*orchestrator.Orchestrator, error) {
	if err := a.ensureConfigured(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return a.registry.All(), nil
	}

	targets := make([]*orchestrator.Orchestrator, 0, len(names))
	for _, name := range names {
		o, err := a.registry.Get(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, o)
	}
	return targets, nil
}

// ensureConfigured loads the configuration on first use.
func (a *App) ensureConfigured() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.configured {
		return nil
	}

	assets, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := a.registry.Configure(assets); err != nil {
		return err
	}

	a.configured = true
	return nil
}
