// Package git provides local git operations for Calcifer.
// This file defines the Runner interface for git CLI operations.
package git

import (
	"context"
	"time"
)

// Commit holds metadata for a single commit.
type Commit struct {
	// SHA is the abbreviated commit hash.
	SHA string `json:"sha"`
	// Subject is the first line of the commit message.
	Subject string `json:"subject"`
	// Author is the commit author name.
	Author string `json:"author"`
	// Date is the commit timestamp.
	Date time.Time `json:"date"`
}

// BranchInfo describes a branch head, or reports that the branch is missing.
type BranchInfo struct {
	// Exists is false when the branch is not present in the repository.
	Exists bool `json:"exists"`
	// Head holds head commit metadata when the branch exists.
	Head Commit `json:"head,omitempty"`
}

// Runner defines operations against a single local git working copy.
// All operations run in the runner's working directory and use context for
// cancellation. The working copy has exactly one checked-out branch at a
// time, so checkout-dependent operations are not safe to run concurrently.
//
// Failure policy: every git failure is caught here, wrapped with
// ErrGitOperation (or a more specific sentinel), and logged by callers;
// raw exec errors never escape the gateway.
type Runner interface {
	// CurrentBranch returns the name of the currently checked out branch.
	// Returns an error if in detached HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// CreateBranch creates a new branch from the current HEAD and, when
	// checkout is true, switches to it. Returns ErrBranchExists if the
	// branch is already present.
	CreateBranch(ctx context.Context, name string, checkout bool) error

	// Checkout switches the working copy to an existing branch.
	Checkout(ctx context.Context, name string) error

	// ListBranches returns the names of all local branches.
	ListBranches(ctx context.Context) ([]string, error)

	// BranchExists checks if a local branch exists.
	BranchExists(ctx context.Context, name string) (bool, error)

	// DeleteBranch force-deletes a local branch. The branch must not be
	// checked out.
	DeleteBranch(ctx context.Context, name string) error

	// BranchInfo returns head commit metadata for a branch, or Exists=false
	// if the branch is missing.
	BranchInfo(ctx context.Context, name string) (*BranchInfo, error)

	// IsMerged reports whether branch is fully contained in target,
	// implemented as "zero commits unique to branch relative to target".
	IsMerged(ctx context.Context, branch, target string) (bool, error)

	// CommitsAhead lists commits on branch that are not on target, newest
	// first, up to limit.
	CommitsAhead(ctx context.Context, branch, target string, limit int) ([]Commit, error)

	// Add stages files for commit. If paths is empty, stages all changes.
	Add(ctx context.Context, paths []string) error

	// CommitAll commits staged changes and returns the new commit hash.
	// Returns ErrNothingToCommit when no commit object was created.
	CommitAll(ctx context.Context, message string) (string, error)

	// Merge merges branch into target (checking out target first) and
	// returns the resulting head commit hash. On failure the working copy
	// is left on target and ErrMergeFailed wraps the git output.
	Merge(ctx context.Context, branch, target string) (string, error)

	// DiffNameOnly returns the paths changed between two refs.
	DiffNameOnly(ctx context.Context, refA, refB string) ([]string, error)

	// AuthorName resolves the configured git author name. Falls back to a
	// sentinel value when user.name is not configured.
	AuthorName(ctx context.Context) string

	// HeadSHA returns the full hash of the current HEAD commit.
	HeadSHA(ctx context.Context) (string, error)
}
