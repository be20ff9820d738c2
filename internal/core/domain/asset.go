// Package domain contains the core types of the stamp engine.
package domain

import (
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// Checksum truncation bounds. A shorter fingerprint trades collision
// resistance for URL brevity; a collision only causes an unnecessary
// rebuild, never a wrong artifact.
const (
	MinChecksumLength = 5
	MaxChecksumLength = 40
)

// Default settings applied by the config loader when a field is omitted.
const (
	DefaultChecksumLength = 8
	DefaultLockWait       = 120 * time.Second
)

// Well-known file names inside an asset's working directory. External
// collaborators (request routers, deploy scripts) may read all of them.
const (
	FingerprintFile = "fingerprint"
	LockFile        = "lockfile"
	StateFile       = "state.dat"
)

// Asset describes one asset namespace: a set of include paths compiled
// into a single fingerprinted artifact inside a working directory.
type Asset struct {
	// Name is the namespace identifier, taken from the config key.
	Name string

	// Includes are the configured input paths (files or directories).
	// Relative entries are resolved against BaseDir.
	Includes []string

	// BaseDir anchors relative include entries.
	BaseDir string

	// WorkDir holds the artifact, fingerprint, lock and state files.
	WorkDir string

	// Output is the artifact file name inside WorkDir.
	Output string

	// ChecksumLength is the fingerprint truncation, fixed at config time.
	ChecksumLength int

	// LockWait bounds how long a request waits for the build lock.
	LockWait time.Duration

	// MaxFingerprintAge bounds how often the full-content checksum is
	// recomputed while mtimes are stable. Zero disables the bound.
	MaxFingerprintAge time.Duration

	// Persist enables saving the cache record across restarts.
	Persist bool
}

// Validate checks the invariants that must hold before the engine starts.
func (a *Asset) Validate() error {
	if len(a.Includes) == 0 {
		return zerr.With(zerr.Wrap(ErrEmptyIncludeSet, "asset validation failed"), "asset", a.Name)
	}
	if a.ChecksumLength < MinChecksumLength || a.ChecksumLength > MaxChecksumLength {
		return zerr.With(zerr.With(zerr.Wrap(ErrChecksumLength, "asset validation failed"), "asset", a.Name), "length", a.ChecksumLength)
	}
	if a.Output == "" {
		return zerr.With(zerr.New("asset output file name is required"), "asset", a.Name)
	}
	return nil
}

// ArtifactPath returns the location of the compiled artifact.
func (a *Asset) ArtifactPath() string {
	return filepath.Join(a.WorkDir, a.Output)
}

// FingerprintPath returns the location of the plain-text fingerprint file.
func (a *Asset) FingerprintPath() string {
	return filepath.Join(a.WorkDir, FingerprintFile)
}

// LockPath returns the location of the advisory lock file.
func (a *Asset) LockPath() string {
	return filepath.Join(a.WorkDir, LockFile)
}

// StatePath returns the location of the persisted cache record.
func (a *Asset) StatePath() string {
	return filepath.Join(a.WorkDir, StateFile)
}

// PathSuffix is the public asset path segment for a given fingerprint:
// namespace, fingerprint and the output file extension.
func (a *Asset) PathSuffix(fingerprint string) string {
	return a.Name + "-" + fingerprint + filepath.Ext(a.Output)
}
