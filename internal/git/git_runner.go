// Package git provides local git operations for Calcifer.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/calcifer/internal/constants"
	"github.com/mrz1836/calcifer/internal/ctxutil"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// logFieldSep separates fields in machine-parsed git log output.
const logFieldSep = "\x1f"

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
}

// Ensure CLIRunner implements Runner.
var _ Runner = (*CLIRunner)(nil)

// NewRunner creates a new CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir}

	// Verify this is a git repository
	if _, err := r.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %w", calciferrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// CurrentBranch returns the name of the currently checked out branch.
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	// Handle detached HEAD state
	if output == "HEAD" {
		return "", fmt.Errorf("repository is in detached HEAD state: %w", calciferrors.ErrGitOperation)
	}

	return output, nil
}

// CreateBranch creates a new branch from the current HEAD.
func (r *CLIRunner) CreateBranch(ctx context.Context, name string, checkout bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("branch name cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	exists, err := r.BranchExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking branch existence: %w", err)
	}
	if exists {
		return fmt.Errorf("branch '%s' already exists: %w", name, calciferrors.ErrBranchExists)
	}

	args := []string{"branch", name}
	if checkout {
		args = []string{"checkout", "-b", name}
	}

	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create branch '%s': %w", name, err)
	}

	return nil
}

// Checkout switches the working copy to an existing branch.
func (r *CLIRunner) Checkout(ctx context.Context, name string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("branch name cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	if _, err := r.run(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to checkout '%s': %w", name, err)
	}

	return nil
}

// ListBranches returns the names of all local branches.
func (r *CLIRunner) ListBranches(ctx context.Context) ([]string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	output, err := r.run(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// BranchExists checks if a local branch exists.
func (r *CLIRunner) BranchExists(ctx context.Context, name string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	_, err := r.run(ctx, "show-ref", "--verify", "refs/heads/"+name)
	if err != nil {
		// Exit code 1 or "not a valid ref" means ref not found, which is expected
		errStr := err.Error()
		if strings.Contains(errStr, "exit status 1") || strings.Contains(errStr, "not a valid ref") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check branch existence: %w", err)
	}
	return true, nil
}

// DeleteBranch force-deletes a local branch.
func (r *CLIRunner) DeleteBranch(ctx context.Context, name string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("branch name cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	if _, err := r.run(ctx, "branch", "-D", name); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("branch '%s': %w", name, calciferrors.ErrBranchNotFound)
		}
		return fmt.Errorf("failed to delete branch '%s': %w", name, err)
	}

	return nil
}

// BranchInfo returns head commit metadata for a branch.
// A missing branch is not an error; Exists is false instead.
func (r *CLIRunner) BranchInfo(ctx context.Context, name string) (*BranchInfo, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	exists, err := r.BranchExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &BranchInfo{Exists: false}, nil
	}

	output, err := r.run(ctx, "log", "-1", "--pretty=format:%h"+logFieldSep+"%s"+logFieldSep+"%an"+logFieldSep+"%ct", name)
	if err != nil {
		return nil, fmt.Errorf("failed to read branch '%s' head: %w", name, err)
	}

	commit, ok := parseLogLine(output)
	if !ok {
		return &BranchInfo{Exists: true}, nil
	}
	return &BranchInfo{Exists: true, Head: commit}, nil
}

// IsMerged reports whether branch has zero commits unique relative to target.
func (r *CLIRunner) IsMerged(ctx context.Context, branch, target string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	output, err := r.run(ctx, "rev-list", "--count", target+".."+branch)
	if err != nil {
		return false, fmt.Errorf("failed to compare '%s' against '%s': %w", branch, target, err)
	}

	count, err := strconv.Atoi(output)
	if err != nil {
		return false, fmt.Errorf("unexpected rev-list output %q: %w", output, calciferrors.ErrGitOperation)
	}
	return count == 0, nil
}

// CommitsAhead lists commits on branch not on target, newest first.
func (r *CLIRunner) CommitsAhead(ctx context.Context, branch, target string, limit int) ([]Commit, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = constants.BranchCommitsLimit
	}

	output, err := r.run(ctx, "log",
		"--pretty=format:%h"+logFieldSep+"%s"+logFieldSep+"%an"+logFieldSep+"%ct",
		"-n", strconv.Itoa(limit),
		target+".."+branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits on '%s': %w", branch, err)
	}

	commits := []Commit{}
	for _, line := range strings.Split(output, "\n") {
		if commit, ok := parseLogLine(line); ok {
			commits = append(commits, commit)
		}
	}
	return commits, nil
}

// Add stages files for commit. If paths is empty, stages all changes.
func (r *CLIRunner) Add(ctx context.Context, paths []string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	args := []string{"add"}
	if len(paths) == 0 {
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, paths...)
	}

	if _, err := r.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	return nil
}

// CommitAll commits staged changes and returns the new commit hash.
func (r *CLIRunner) CommitAll(ctx context.Context, message string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	if message == "" {
		return "", fmt.Errorf("commit message cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	// Use --cleanup=strip to handle formatting (removes trailing whitespace, leading/trailing blank lines)
	if _, err := r.run(ctx, "commit", "-m", message, "--cleanup=strip"); err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "nothing to commit") ||
			strings.Contains(errStr, "nothing added to commit") ||
			strings.Contains(errStr, "no changes added to commit") {
			return "", calciferrors.ErrNothingToCommit
		}
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	return r.HeadSHA(ctx)
}

// Merge merges branch into target and returns the resulting head hash.
func (r *CLIRunner) Merge(ctx context.Context, branch, target string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	if err := r.Checkout(ctx, target); err != nil {
		return "", err
	}

	if _, err := r.run(ctx, "merge", branch); err != nil {
		return "", fmt.Errorf("%w: %w", calciferrors.ErrMergeFailed, err)
	}

	return r.HeadSHA(ctx)
}

// DiffNameOnly returns the paths changed between two refs.
func (r *CLIRunner) DiffNameOnly(ctx context.Context, refA, refB string) ([]string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	output, err := r.run(ctx, "diff", "--name-only", refA, refB)
	if err != nil {
		return nil, fmt.Errorf("failed to diff '%s' against '%s': %w", refA, refB, err)
	}

	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// AuthorName resolves git config user.name, defaulting to a sentinel when
// unset so commits and changelog entries always carry an author.
func (r *CLIRunner) AuthorName(ctx context.Context) string {
	output, err := r.run(ctx, "config", "user.name")
	if err != nil || output == "" {
		return constants.DefaultAuthor
	}
	return output
}

// HeadSHA returns the full hash of the current HEAD commit.
func (r *CLIRunner) HeadSHA(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return output, nil
}

// run executes a git command in the runner's working directory.
func (r *CLIRunner) run(ctx context.Context, args ...string) (string, error) {
	return RunCommand(ctx, r.workDir, args...)
}

// parseLogLine parses one line of field-separated git log output.
func parseLogLine(line string) (Commit, bool) {
	parts := strings.Split(line, logFieldSep)
	if len(parts) != 4 || parts[0] == "" {
		return Commit{}, false
	}

	epoch, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Commit{}, false
	}

	return Commit{
		SHA:     parts[0],
		Subject: parts[1],
		Author:  parts[2],
		Date:    time.Unix(epoch, 0),
	}, true
}
