package progrock

import (
	"github.com/vito/progrock"
	"go.trai.ch/stamp/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Cached marks the vertex as satisfied without running the producer.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
