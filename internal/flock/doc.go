// Package flock provides cross-platform file locking utilities.
//
// Calcifer wraps exactly one git working copy with exactly one checked-out
// branch, so checkout-dependent operations from two processes would corrupt
// shared on-disk state. The orchestrator guards those operations with an
// exclusive lock file acquired through this package.
//
// Usage:
//
//	guard, err := flock.Acquire(ctx, path, timeout)
//	if err != nil {
//	    // Lock not acquired - another writer holds the working copy
//	}
//	defer guard.Release()
package flock
