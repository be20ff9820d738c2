// Package ports defines the core interfaces for the application.
package ports

// IncludeResolver expands configured include paths into the deterministic
// file list hashed and snapshotted by the engine.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type IncludeResolver interface {
	// Resolve turns include entries (files or directories, absolute or
	// relative to baseDir) into a flattened, lexicographically sorted
	// list of absolute file paths. Directories are recursed in full.
	// It performs directory listing and stat calls only, no content
	// reads, since it runs on every request.
	Resolve(includes []string, baseDir string) ([]string, error)
}
