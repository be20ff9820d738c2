// Package progrock provides the Progrock implementation of the telemetry
// adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/stamp/internal/core/ports"
)

var _ ports.Tracer = (*Recorder)(nil)

// Recorder implements ports.Tracer using the vito/progrock library: one
// progrock vertex per expensive-path pass of an asset namespace.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() ports.Tracer {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Vertex starts recording a new vertex named after the asset namespace.
func (r *Recorder) Vertex(_ context.Context, name string) ports.Vertex {
	d := digest.FromString(name)
	return &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
