package producer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/stamp/internal/core/ports"
)

const NodeID graft.ID = "adapter.producer"

func init() {
	graft.Register(graft.Node[ports.Producer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Producer, error) {
			return NewConcat(), nil
		},
	})
}
