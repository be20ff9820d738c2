package fs_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/fs"
	"go.trai.ch/stamp/internal/core/domain"
)

func TestFingerprinter_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	artifact := filepath.Join(dir, "site.css")
	writeFile(t, a, "x")
	writeFile(t, b, "y")
	writeFile(t, artifact, "xy")

	fp := fs.NewFingerprinter()

	first, err := fp.Fingerprint([]string{a, b}, artifact, 16)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	// Deterministic for identical input bytes.
	second, err := fp.Fingerprint([]string{a, b}, artifact, 16)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A single changed byte in any input changes the digest.
	writeFile(t, a, "z")
	changed, err := fp.Fingerprint([]string{a, b}, artifact, 16)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestFingerprinter_Fingerprint_TruncationLengths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	artifact := filepath.Join(dir, "out.css")
	writeFile(t, a, "content")
	writeFile(t, artifact, "content")

	fp := fs.NewFingerprinter()

	for _, length := range []int{5, 12, 40} {
		digest, err := fp.Fingerprint([]string{a}, artifact, length)
		require.NoError(t, err)
		assert.Len(t, digest, length)
	}

	_, err := fp.Fingerprint([]string{a}, artifact, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumLength))

	_, err = fp.Fingerprint([]string{a}, artifact, 41)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumLength))
}

func TestFingerprinter_Fingerprint_ArtifactBytesParticipate(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	artifact := filepath.Join(dir, "out.css")
	writeFile(t, a, "x")
	writeFile(t, artifact, "first")

	fp := fs.NewFingerprinter()
	before, err := fp.Fingerprint([]string{a}, artifact, 20)
	require.NoError(t, err)

	writeFile(t, artifact, "second")
	after, err := fp.Fingerprint([]string{a}, artifact, 20)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprinter_Fingerprint_FileBoundariesPinned(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	artifact := filepath.Join(dir, "out.css")
	writeFile(t, artifact, "xy")

	fp := fs.NewFingerprinter()

	// "x"+"y" and "xy"+"" concatenate identically; the per-file
	// separator must keep the digests apart.
	writeFile(t, a, "x")
	writeFile(t, b, "y")
	split, err := fp.Fingerprint([]string{a, b}, artifact, 20)
	require.NoError(t, err)

	writeFile(t, a, "xy")
	writeFile(t, b, "")
	shifted, err := fp.Fingerprint([]string{a, b}, artifact, 20)
	require.NoError(t, err)
	assert.NotEqual(t, split, shifted)
}

func TestFingerprinter_Fingerprint_MissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	artifact := filepath.Join(dir, "out.css")
	writeFile(t, a, "x")

	fp := fs.NewFingerprinter()

	// Neither the vanished include nor the missing artifact is fatal.
	withMissing, err := fp.Fingerprint([]string{a, filepath.Join(dir, "gone.css")}, artifact, 12)
	require.NoError(t, err)

	onlyA, err := fp.Fingerprint([]string{a}, artifact, 12)
	require.NoError(t, err)
	assert.Equal(t, onlyA, withMissing)
}

func TestFingerprinter_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fingerprint")
	fp := fs.NewFingerprinter()

	// Absent file reads as empty without error.
	loaded, err := fp.Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, fp.Save(path, "cafebabe1234"))
	loaded, err = fp.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cafebabe1234", loaded)
}
