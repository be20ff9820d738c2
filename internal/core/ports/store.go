package ports

import "go.trai.ch/stamp/internal/core/domain"

// StateStore persists the cache record across process restarts. It is
// strictly an optimization: absence or failure affects startup latency,
// never correctness.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Persist writes the record to durable storage.
	Persist(rec domain.CacheRecord) error

	// Restore reads the last persisted record. It returns nil, nil when
	// nothing usable is stored; corruption is reported as an error so
	// the caller can log it and proceed with a cold cache.
	Restore() (*domain.CacheRecord, error)
}
