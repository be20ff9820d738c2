// Package telemetry provides tracer implementations for recording rebuild
// activity.
package telemetry

import (
	"context"

	"go.trai.ch/stamp/internal/core/ports"
)

var _ ports.Tracer = (*NoOpTracer)(nil)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Vertex returns a no-op vertex.
func (t *NoOpTracer) Vertex(_ context.Context, _ string) ports.Vertex {
	return &NoOpVertex{}
}

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}
