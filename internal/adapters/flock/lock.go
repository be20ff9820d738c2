// Package flock implements the cross-process build lock with an advisory
// whole-file flock(2). The guarantee only holds for processes sharing one
// filesystem on one host.
package flock

import (
	"errors"
	"os"
	"strconv"
	"syscall"
	"time"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

// retryInterval is the fixed sleep between blocking acquisition attempts.
const retryInterval = time.Second

var _ ports.BuildLock = (*Lock)(nil)

// Lock is a guard object scoped to one rebuild critical section. The file
// handle lives only between a successful acquisition and Release, so the
// lock is dropped deterministically on every exit path and automatically
// on process exit.
type Lock struct {
	path string
	file *os.File
}

// New creates a lock for the given lock file path. Nothing is opened
// until acquisition.
func New(path string) *Lock {
	return &Lock{path: path}
}

// TryAcquire attempts a non-blocking exclusive acquisition. On success the
// current process id is written into the file as a diagnostic aid.
func (l *Lock) TryAcquire() (bool, error) {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644) //nolint:gosec // Lock file is observable by design
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to open lock file"), "path", l.path)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to flock lock file"), "path", l.path)
	}

	l.file = file
	l.stampPID()
	return true, nil
}

// Acquire blocks until the lock is held, retrying in fixed increments, and
// fails with domain.ErrLockTimeout once maxWait elapses. The bound keeps
// worst-case request latency finite under rebuild contention.
func (l *Lock) Acquire(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for {
		ok, err := l.TryAcquire()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrLockTimeout, "failed to acquire build lock"), "path", l.path), "max_wait", maxWait.String())
		}
		time.Sleep(retryInterval)
	}
}

// Release drops the lock and closes the handle. Releasing an unheld lock
// is a no-op.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_UN); err != nil {
		_ = file.Close()
		return zerr.With(zerr.Wrap(err, "failed to unlock lock file"), "path", l.path)
	}
	if err := file.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close lock file"), "path", l.path)
	}
	return nil
}

// stampPID truncates the lock file and records the owner's pid.
func (l *Lock) stampPID() {
	if err := l.file.Truncate(0); err != nil {
		return
	}
	_, _ = l.file.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0)
}
