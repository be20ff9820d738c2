package flock_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/flock"
	"go.trai.ch/stamp/internal/core/domain"
)

func TestLock_TryAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockfile")

	first := flock.New(path)
	ok, err := first.TryAcquire()
	require.NoError(t, err)
	require.True(t, ok)

	// flock state is per open file description, so a second handle in
	// the same process contends just like another process would.
	second := flock.New(path)
	ok, err = second.TryAcquire()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, first.Release())

	ok, err = second.TryAcquire()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Release())
}

func TestLock_StampsPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockfile")

	lock := flock.New(path)
	ok, err := lock.TryAcquire()
	require.NoError(t, err)
	require.True(t, ok)
	defer lock.Release() //nolint:errcheck // Best effort cleanup in test

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
}

func TestLock_AcquireTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockfile")

	holder := flock.New(path)
	ok, err := holder.TryAcquire()
	require.NoError(t, err)
	require.True(t, ok)
	defer holder.Release() //nolint:errcheck // Best effort cleanup in test

	waiter := flock.New(path)
	start := time.Now()
	err = waiter.Acquire(time.Second)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLockTimeout))
	// Bounded: roughly one retry interval, never a hang.
	assert.Less(t, elapsed, 3*time.Second)
}

func TestLock_AcquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockfile")

	holder := flock.New(path)
	ok, err := holder.TryAcquire()
	require.NoError(t, err)
	require.True(t, ok)

	waiter := flock.New(path)
	done := make(chan error, 1)
	go func() {
		done <- waiter.Acquire(10 * time.Second)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, holder.Release())

	select {
	case err := <-done:
		require.NoError(t, err)
		require.NoError(t, waiter.Release())
	case <-time.After(5 * time.Second):
		t.Fatal("waiter did not acquire the lock after release")
	}
}

func TestLock_ReleaseUnheld(t *testing.T) {
	lock := flock.New(filepath.Join(t.TempDir(), "lockfile"))
	require.NoError(t, lock.Release())
}
