package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/fs"
	"go.trai.ch/stamp/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newResolver() *fs.Resolver {
	return fs.NewResolver(fs.NewWalker())
}

func TestResolver_Resolve(t *testing.T) {
	baseDir := t.TempDir()

	// base/
	//   css/
	//     b.css
	//     sub/
	//       c.css
	//   a.css
	writeFile(t, filepath.Join(baseDir, "css", "b.css"), "b")
	writeFile(t, filepath.Join(baseDir, "css", "sub", "c.css"), "c")
	writeFile(t, filepath.Join(baseDir, "a.css"), "a")

	files, err := newResolver().Resolve([]string{"css", "a.css"}, baseDir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(baseDir, "a.css"),
		filepath.Join(baseDir, "css", "b.css"),
		filepath.Join(baseDir, "css", "sub", "c.css"),
	}
	assert.Equal(t, want, files)
}

func TestResolver_Resolve_AbsoluteEntry(t *testing.T) {
	baseDir := t.TempDir()
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "x.js"), "x")

	files, err := newResolver().Resolve([]string{filepath.Join(other, "x.js")}, baseDir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(other, "x.js")}, files)
}

func TestResolver_Resolve_Deterministic(t *testing.T) {
	baseDir := t.TempDir()
	for _, name := range []string{"z.css", "m.css", "a.css"} {
		writeFile(t, filepath.Join(baseDir, "css", name), name)
	}

	resolver := newResolver()
	first, err := resolver.Resolve([]string{"css"}, baseDir)
	require.NoError(t, err)
	second, err := resolver.Resolve([]string{"css"}, baseDir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, sortedStrings(first), "expected lexicographic order, got %v", first)
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

func TestResolver_Resolve_EmptyIncludeSet(t *testing.T) {
	_, err := newResolver().Resolve(nil, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyIncludeSet))
}

func TestResolver_Resolve_MissingEntry(t *testing.T) {
	_, err := newResolver().Resolve([]string{"nope.css"}, t.TempDir())
	require.Error(t, err)
}
