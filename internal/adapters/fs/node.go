package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/core/ports"
)

const (
	WalkerNodeID        graft.ID = "adapter.fs.walker"
	ResolverNodeID      graft.ID = "adapter.fs.resolver"
	SnapshotterNodeID   graft.ID = "adapter.fs.snapshotter"
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
)

func init() {
	// Walker Node (concrete implementation needed by Resolver)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.IncludeResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.IncludeResolver, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(walker), nil
		},
	})

	// Snapshotter Node
	graft.Register(graft.Node[ports.Snapshotter]{
		ID:        SnapshotterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Snapshotter, error) {
			return NewSnapshotter(), nil
		},
	})

	// Fingerprinter Node
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			return NewFingerprinter(), nil
		},
	})
}
