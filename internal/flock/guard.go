package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// retryInterval is how often Acquire retries a contended lock.
const retryInterval = 100 * time.Millisecond

// filePerm is the permission mode for created lock files.
const filePerm = 0o600

// Guard holds an acquired exclusive lock until Release is called.
type Guard struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and acquires an
// exclusive lock on it, retrying until the timeout elapses or the context is
// canceled. Returns ErrLockTimeout if the lock stays contended.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Guard, error) {
	if path == "" {
		return nil, fmt.Errorf("lock path %w", calciferrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePerm) //#nosec G304 -- path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			_ = file.Close()
			return nil, err
		}

		if err := Exclusive(file.Fd()); err == nil {
			return &Guard{file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("lock file '%s' held by another process: %w", path, calciferrors.ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			_ = file.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// Release unlocks and closes the lock file. Safe to call once.
func (g *Guard) Release() {
	if g == nil || g.file == nil {
		return
	}
	_ = Unlock(g.file.Fd())
	_ = g.file.Close()
	g.file = nil
}
