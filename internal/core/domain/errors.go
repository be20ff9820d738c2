package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyIncludeSet is returned when an asset is configured without
	// any include paths. Fatal at initialization.
	ErrEmptyIncludeSet = zerr.New("include set is empty")

	// ErrChecksumLength is returned when the configured checksum length
	// is outside the allowed range. Fatal at initialization.
	ErrChecksumLength = zerr.New("checksum length out of range")

	// ErrLockTimeout is returned when the build lock could not be
	// acquired within the configured wait. The caller decides whether to
	// retry, serve stale, or fail the request.
	ErrLockTimeout = zerr.New("build lock wait timed out")

	// ErrStateCorrupt marks an unreadable or inconsistent persisted cache
	// record. Always recovered locally, never fatal.
	ErrStateCorrupt = zerr.New("persisted state is corrupt")

	// ErrAssetNotFound is returned when a requested asset namespace is
	// not present in the configuration.
	ErrAssetNotFound = zerr.New("asset not found")
)
