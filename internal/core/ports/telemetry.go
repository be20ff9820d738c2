package ports

import "context"

// Tracer records rebuild activity, one vertex per expensive-path pass.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Vertex starts recording a unit of work identified by name.
	Vertex(ctx context.Context, name string) Vertex
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Cached marks the vertex as satisfied without invoking the producer.
	Cached()
	// Complete marks the vertex as finished, successfully or not.
	Complete(err error)
}
