package orchestrator

import (
	"sort"
	"sync"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factories provides the shared collaborators plus constructors for the
// per-asset lock and state store.
type Factories struct {
	Resolver      ports.IncludeResolver
	Snapshotter   ports.Snapshotter
	Fingerprinter ports.Fingerprinter
	Producer      ports.Producer
	Logger        ports.Logger
	Tracer        ports.Tracer
	NewLock       func(path string) ports.BuildLock
	NewStore      func(path string) ports.StateStore
}

// Registry holds one orchestrator per configured asset namespace.
type Registry struct {
	factories Factories

	mu            sync.RWMutex
	orchestrators map[string]*Orchestrator
}

// NewRegistry creates an empty registry.
func NewRegistry(factories Factories) *Registry {
	return &Registry{
		factories:     factories,
		orchestrators: make(map[string]*Orchestrator),
	}
}

// Configure builds an orchestrator for every asset definition, replacing
// any previous configuration.
func (r *Registry) Configure(assets []domain.Asset) error {
	orchestrators := make(map[string]*Orchestrator, len(assets))

	for _, asset := range assets {
		if _, exists := orchestrators[asset.Name]; exists {
			return zerr.With(zerr.New("duplicate asset name"), "asset", asset.Name)
		}

		deps := Deps{
			Resolver:      r.factories.Resolver,
			Snapshotter:   r.factories.Snapshotter,
			Fingerprinter: r.factories.Fingerprinter,
			Producer:      r.factories.Producer,
			Lock:          r.factories.NewLock(asset.LockPath()),
			Logger:        r.factories.Logger,
			Tracer:        r.factories.Tracer,
		}
		if asset.Persist {
			deps.Store = r.factories.NewStore(asset.StatePath())
		}

		o, err := New(asset, deps)
		if err != nil {
			return err
		}
		orchestrators[asset.Name] = o
	}

	r.mu.Lock()
	r.orchestrators = orchestrators
	r.mu.Unlock()
	return nil
}

// Get returns the orchestrator for an asset namespace.
func (r *Registry) Get(name string) (*Orchestrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orchestrators[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssetNotFound, "unknown asset namespace"), "asset", name)
	}
	return o, nil
}

// All returns every orchestrator, sorted by asset name for deterministic
// iteration.
func (r *Registry) All() []*Orchestrator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Orchestrator, 0, len(r.orchestrators))
	for _, o := range r.orchestrators {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].asset.Name < all[j].asset.Name })
	return all
}
