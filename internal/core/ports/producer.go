package ports

import "io"

// Producer is the external build collaborator: it transforms the resolved,
// sorted file list into the compiled artifact's bytes. It is invoked
// synchronously while the build lock is held; any error propagates to the
// caller after the lock is released. Each asset type supplies its own
// producer.
//
//go:generate go run go.uber.org/mock/mockgen -source=producer.go -destination=mocks/mock_producer.go -package=mocks
type Producer interface {
	// Write streams the compiled artifact for the given sorted file list
	// to w.
	Write(w io.Writer, files []string) error
}
