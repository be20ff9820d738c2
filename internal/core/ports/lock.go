package ports

import "time"

// BuildLock is the cross-process mutual exclusion used on the rebuild
// path. The guarantee only holds for processes sharing one filesystem on
// one host; the lock is advisory and cooperative.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks
type BuildLock interface {
	// TryAcquire attempts a non-blocking exclusive acquisition.
	TryAcquire() (bool, error)

	// Acquire blocks until the lock is held, retrying in fixed
	// increments, and fails with domain.ErrLockTimeout once maxWait
	// elapses.
	Acquire(maxWait time.Duration) error

	// Release drops the lock. It must be called on every exit path of
	// the critical section.
	Release() error
}
