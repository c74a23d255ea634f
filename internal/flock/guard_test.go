package flock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/errors"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	guard, err := Acquire(context.Background(), path, time.Second)
	require.NoError(t, err)
	require.NotNil(t, guard)

	guard.Release()

	// Lock can be taken again after release.
	guard, err = Acquire(context.Background(), path, time.Second)
	require.NoError(t, err)
	guard.Release()
}

func TestAcquireContended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	holder, err := Acquire(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer holder.Release()

	_, err = Acquire(context.Background(), path, 200*time.Millisecond)
	require.ErrorIs(t, err, errors.ErrLockTimeout)
}

func TestAcquireEmptyPath(t *testing.T) {
	_, err := Acquire(context.Background(), "", time.Second)
	require.ErrorIs(t, err, errors.ErrEmptyValue)
}

func TestAcquireCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Acquire(ctx, filepath.Join(t.TempDir(), "repo.lock"), time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAcquireCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".calcifer", "repo.lock")

	guard, err := Acquire(context.Background(), path, time.Second)
	require.NoError(t, err)
	guard.Release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	guard, err := Acquire(context.Background(), path, time.Second)
	require.NoError(t, err)

	guard.Release()
	assert.NotPanics(t, guard.Release)

	var nilGuard *Guard
	assert.NotPanics(t, nilGuard.Release)
}
