package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/adapters/flock"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/producer"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/state"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/stamp/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.SnapshotterNodeID,
			fs.FingerprinterNodeID,
			producer.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			resolver, err := graft.Dep[ports.IncludeResolver](ctx)
			if err != nil {
				return nil, err
			}

			snapshotter, err := graft.Dep[ports.Snapshotter](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			prod, err := graft.Dep[ports.Producer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(Factories{
				Resolver:      resolver,
				Snapshotter:   snapshotter,
				Fingerprinter: fingerprinter,
				Producer:      prod,
				Logger:        log,
				Tracer:        tracer,
				NewLock:       func(path string) ports.BuildLock { return flock.New(path) },
				NewStore:      func(path string) ports.StateStore { return state.NewStore(path) },
			}), nil
		},
	})
}
