package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IncludeResolver = (*Resolver)(nil)

// Resolver implements the IncludeResolver interface on the local
// filesystem.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Resolve expands the include entries into the sorted file list. The sort
// guarantees a stable fingerprint and snapshot concatenation regardless of
// filesystem enumeration order.
func (r *Resolver) Resolve(includes []string, baseDir string) ([]string, error) {
	if len(includes) == 0 {
		return nil, domain.ErrEmptyIncludeSet
	}

	var files []string
	for _, include := range includes {
		path := include
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat include path"), "path", path)
		}

		if info.IsDir() {
			for filePath := range r.walker.WalkFiles(path) {
				files = append(files, filePath)
			}
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}
