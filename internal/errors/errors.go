// Package errors provides centralized error handling for Calcifer.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// The sentinels fall into four classes: input validation errors (rejected
// synchronously with no side effects), precondition errors (accumulated and
// reported together before completion), external-system failures (caught at
// the gateway boundary and never re-thrown raw), and not-found errors.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrIndexOutOfRange indicates a checklist index outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidCategory indicates an unknown work item category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidActionType indicates an unknown work item action type.
	ErrInvalidActionType = errors.New("invalid action type")

	// ErrWorkItemNotFound indicates the requested work item does not exist.
	ErrWorkItemNotFound = errors.New("work item not found")

	// ErrEndpointNotFound indicates the requested endpoint does not exist.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrServiceNotFound indicates the requested service does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrDocNotFound indicates the requested documentation file does not exist.
	ErrDocNotFound = errors.New("documentation file not found")

	// ErrPreconditionFailed indicates a completion gate did not hold
	// (incomplete checklist, missing commits, changelog not updated).
	ErrPreconditionFailed = errors.New("completion preconditions not met")

	// ErrGitOperation indicates that a git command (branch, commit, merge, etc.)
	// failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrMergeFailed indicates the merge of a work item branch into the
	// trunk failed. The wrapped message carries the underlying git output.
	ErrMergeFailed = errors.New("merge failed")

	// ErrNothingToCommit indicates a commit was requested with no staged
	// changes, so no commit object was created.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrNotGitRepo indicates a git repository is required but not found.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBranchExists indicates an attempt to create a branch that already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the requested branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrProbeFailed indicates an endpoint health probe could not complete.
	ErrProbeFailed = errors.New("probe failed")

	// ErrUnknownEndpointType indicates an endpoint type with no probe
	// implementation. Probes fail closed for these.
	ErrUnknownEndpointType = errors.New("unknown endpoint type")

	// ErrStoreOperation indicates a database operation failed.
	ErrStoreOperation = errors.New("store operation failed")

	// ErrDuplicateName indicates a unique-name constraint violation
	// (service names, endpoint names, branch names).
	ErrDuplicateName = errors.New("name already in use")

	// ErrLockTimeout indicates the repository lock could not be acquired
	// within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")
)
