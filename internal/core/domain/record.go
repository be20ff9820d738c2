package domain

import "time"

// CacheRecord is the in-memory (and optionally persisted) staleness state
// of one asset namespace. It is owned exclusively by that namespace's
// orchestrator; cross-process consistency goes through the fingerprint and
// lock files on disk, never through shared memory.
type CacheRecord struct {
	// IncludeMtimes is the mtime snapshot of the include file list at the
	// last successful check. Empty means the cache is invalid.
	IncludeMtimes string `json:"include_mtimes"`

	// BuiltMtime is the artifact's own modification time in unix
	// nanoseconds, zero when the artifact did not exist.
	BuiltMtime int64 `json:"built_mtime"`

	// FingerprintedAt is when the content checksum was last computed.
	FingerprintedAt time.Time `json:"fingerprinted_at"`
}

// Valid reports whether the record holds a usable snapshot.
func (r *CacheRecord) Valid() bool {
	return r.IncludeMtimes != ""
}

// FingerprintCurrent reports whether the last checksum computation is
// recent enough to be trusted without recomputation. A zero maxAge
// disables the bound and always trusts the cached timestamp.
func (r *CacheRecord) FingerprintCurrent(maxAge time.Duration, now time.Time) bool {
	if maxAge == 0 {
		return true
	}
	return now.Sub(r.FingerprintedAt) < maxAge
}

// Invalidate clears the mtime snapshot, forcing the next request down the
// expensive path regardless of actual filesystem state.
func (r *CacheRecord) Invalidate() {
	r.IncludeMtimes = ""
}
