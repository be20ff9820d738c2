package domain

// BuildState is the outcome of a single request-time staleness decision.
type BuildState string

const (
	// StateFresh means the cache is valid and no action is taken.
	StateFresh BuildState = "Fresh"
	// StateNeedsCheck means mtimes changed and the checksum has not been
	// evaluated yet.
	StateNeedsCheck BuildState = "NeedsCheck"
	// StateRebuilding means the lock is held and the producer is invoked.
	StateRebuilding BuildState = "Rebuilding"
	// StateFingerprintOnly means mtimes drifted but content did not; the
	// producer is never invoked.
	StateFingerprintOnly BuildState = "FingerprintOnly"
)
