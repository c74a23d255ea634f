// Package work orchestrates the work item lifecycle: branch allocation at
// creation, checklist progress, commit recording with changelog updates,
// completion validation, and the merge that closes an item out.
package work

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/calcifer/internal/changelog"
	"github.com/mrz1836/calcifer/internal/checklist"
	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/constants"
	"github.com/mrz1836/calcifer/internal/ctxutil"
	"github.com/mrz1836/calcifer/internal/domain"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
	"github.com/mrz1836/calcifer/internal/flock"
	"github.com/mrz1836/calcifer/internal/git"
	"github.com/mrz1836/calcifer/internal/store"
)

// Warning reports a non-fatal problem encountered during an operation.
// The operation itself succeeded; the warning describes cleanup or setup
// work that failed and may need manual attention.
type Warning struct {
	// Op names the step that failed (e.g. "create branch").
	Op string

	// Err is the underlying failure.
	Err error
}

// String renders the warning for display.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

// Config collects the dependencies of an Orchestrator.
type Config struct {
	// Store persists work items and commit records. Required.
	Store store.Store

	// Git runs operations against the repository working copy. Required.
	Git git.Runner

	// Changelog maintains the repository change log. Required.
	Changelog *changelog.Writer

	// Clock is the time source. Defaults to the real clock.
	Clock clock.Clock

	// Trunk is the integration branch. Defaults to "main".
	Trunk string

	// ChangelogPath is the change log path relative to the repository root,
	// used for the completion validation diff check.
	ChangelogPath string

	// LockPath is the repository lock file guarding checkout-dependent
	// operations. Empty disables locking.
	LockPath string

	// Logger receives structured operation logs.
	Logger zerolog.Logger
}

// Orchestrator drives work items through their lifecycle.
type Orchestrator struct {
	store         store.Store
	git           git.Runner
	changelog     *changelog.Writer
	clk           clock.Clock
	trunk         string
	changelogPath string
	lockPath      string
	logger        zerolog.Logger
}

// New creates an Orchestrator, applying defaults for optional fields.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required: %w", calciferrors.ErrEmptyValue)
	}
	if cfg.Git == nil {
		return nil, fmt.Errorf("git runner is required: %w", calciferrors.ErrEmptyValue)
	}
	if cfg.Changelog == nil {
		return nil, fmt.Errorf("changelog writer is required: %w", calciferrors.ErrEmptyValue)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Trunk == "" {
		cfg.Trunk = constants.DefaultTrunkBranch
	}
	if cfg.ChangelogPath == "" {
		cfg.ChangelogPath = constants.DefaultChangelogPath
	}

	return &Orchestrator{
		store:         cfg.Store,
		git:           cfg.Git,
		changelog:     cfg.Changelog,
		clk:           cfg.Clock,
		trunk:         cfg.Trunk,
		changelogPath: cfg.ChangelogPath,
		lockPath:      cfg.LockPath,
		logger:        cfg.Logger,
	}, nil
}

// CreateRequest carries the inputs for a new work item.
type CreateRequest struct {
	Title       string
	Category    domain.Category
	ActionType  domain.ActionType
	Description string
	ServiceID   *int64
}

// Create makes a new work item: allocates its branch name, seeds the
// checklist for its category/action pair, creates and checks out the git
// branch, and persists the row in planning state.
//
// A failure to create the git branch does not fail the operation; the item
// is persisted with its allocated branch name and a Warning is returned so
// the branch can be created manually.
func (o *Orchestrator) Create(ctx context.Context, req CreateRequest) (*domain.WorkItem, *Warning, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, nil, fmt.Errorf("title is required: %w", calciferrors.ErrEmptyValue)
	}
	if !req.Category.Valid() {
		return nil, nil, fmt.Errorf("category %q: %w", req.Category, calciferrors.ErrInvalidCategory)
	}
	if !req.ActionType.Valid() {
		return nil, nil, fmt.Errorf("action type %q: %w", req.ActionType, calciferrors.ErrInvalidActionType)
	}

	guard, err := o.lock(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer guard.release()

	now := o.clk.Now()
	base := git.WorkItemBranchName(string(req.Category), string(req.ActionType), req.Title, now)
	branch, err := git.UniqueBranchName(ctx, o.git, base, now)
	if err != nil {
		return nil, nil, err
	}

	item := &domain.WorkItem{
		Title:       req.Title,
		Category:    req.Category,
		ActionType:  req.ActionType,
		Status:      domain.StatusPlanning,
		Description: req.Description,
		Branch:      branch,
		Checklist:   checklist.For(req.Category, req.ActionType),
		StartedAt:   now,
		ServiceID:   req.ServiceID,
	}

	var warning *Warning
	if err = o.git.CreateBranch(ctx, branch, true); err != nil {
		warning = &Warning{Op: "create branch", Err: err}
		o.logger.Warn().Err(err).Str("branch", branch).Msg("branch creation failed; work item keeps its allocated name")
	}

	if err = o.store.CreateWorkItem(ctx, item); err != nil {
		return nil, nil, err
	}

	o.logger.Info().Int64("work_item", item.ID).Str("branch", branch).Msg("work item created")
	return item, warning, nil
}

// ToggleChecklistItem flips the done flag of the checklist item at index and
// persists the work item. Status never changes as a side effect.
func (o *Orchestrator) ToggleChecklistItem(ctx context.Context, id int64, index int) (*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(item.Checklist) {
		return nil, fmt.Errorf("checklist index %d of %d items: %w",
			index, len(item.Checklist), calciferrors.ErrIndexOutOfRange)
	}

	item.Checklist[index].Done = !item.Checklist[index].Done
	if err = o.store.UpdateWorkItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateNotes replaces the work item's notes, truncated to the notes cap.
func (o *Orchestrator) UpdateNotes(ctx context.Context, id int64, notes string) (*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(notes) > constants.NotesMaxLen {
		notes = notes[:constants.NotesMaxLen]
	}
	item.Notes = notes

	if err = o.store.UpdateWorkItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RecordCommit commits the working copy's changes on the work item's branch,
// writing the change log entry first so it lands in the same commit, then
// persists a commit record.
//
// Empty message or entry fails before any side effect. ErrNothingToCommit is
// returned when the working copy had no changes; no record is persisted.
func (o *Orchestrator) RecordCommit(ctx context.Context, id int64, message, entry string) (*domain.CommitRecord, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	entry = strings.TrimSpace(entry)
	if message == "" {
		return nil, fmt.Errorf("commit message is required: %w", calciferrors.ErrEmptyValue)
	}
	if entry == "" {
		return nil, fmt.Errorf("change log entry is required: %w", calciferrors.ErrEmptyValue)
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	guard, err := o.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer guard.release()

	if item.Branch != "" {
		if err = o.git.Checkout(ctx, item.Branch); err != nil {
			return nil, err
		}
	}

	author := o.git.AuthorName(ctx)
	if err = o.changelog.Append(entry, author, item.TypeLabel()); err != nil {
		return nil, err
	}

	if err = o.git.Add(ctx, nil); err != nil {
		return nil, err
	}

	sha, err := o.git.CommitAll(ctx, message)
	if err != nil {
		return nil, err
	}

	record := &domain.CommitRecord{
		WorkItemID:  item.ID,
		SHA:         sha,
		Message:     message,
		CommittedAt: o.clk.Now(),
	}
	if err = o.store.AddCommitRecord(ctx, record); err != nil {
		return nil, err
	}

	o.logger.Info().Int64("work_item", item.ID).Str("sha", sha).Msg("commit recorded")
	return record, nil
}

// ValidateForCompletion runs the completion precondition checks and returns
// every failure. All four checks run independently; an empty slice means the
// item is ready to merge. Nothing is mutated.
func (o *Orchestrator) ValidateForCompletion(ctx context.Context, item *domain.WorkItem) []string {
	var problems []string

	if n := item.IncompleteSteps(); n > 0 {
		problems = append(problems, fmt.Sprintf("%d checklist item(s) not completed", n))
	}

	if item.Branch == "" {
		problems = append(problems, "No Git branch associated with this work item")
	}

	if item.Branch != "" {
		commits, err := o.git.CommitsAhead(ctx, item.Branch, o.trunk, constants.BranchCommitsLimit)
		if err != nil || len(commits) == 0 {
			problems = append(problems, "Branch has no commits")
		}
	}

	if item.Branch != "" {
		changed, err := o.git.DiffNameOnly(ctx, o.trunk, item.Branch)
		if err != nil || !containsPath(changed, o.changelogPath) {
			problems = append(problems, fmt.Sprintf("%s not updated in this branch", o.changelogPath))
		}
	}

	return problems
}

// MergeAndComplete validates, merges the work item's branch into the trunk,
// and marks the item complete. The three phases are strictly ordered:
// validation mutates nothing, a failed merge leaves status unchanged so the
// call can be retried, and completion only runs after the merge phase
// succeeds. An already-merged branch skips the merge call entirely.
func (o *Orchestrator) MergeAndComplete(ctx context.Context, id int64) (*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	guard, err := o.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer guard.release()

	if problems := o.ValidateForCompletion(ctx, item); len(problems) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(problems, " | "), calciferrors.ErrPreconditionFailed)
	}

	merged, err := o.git.IsMerged(ctx, item.Branch, o.trunk)
	if err != nil {
		return nil, err
	}

	if merged {
		item.BranchMerged = true
	} else {
		sha, mergeErr := o.git.Merge(ctx, item.Branch, o.trunk)
		if mergeErr != nil {
			return nil, mergeErr
		}
		item.BranchMerged = true
		item.MergeCommitSHA = sha
	}

	item.Status = domain.StatusComplete
	completedAt := o.clk.Now()
	item.CompletedAt = &completedAt

	if err = o.store.UpdateWorkItem(ctx, item); err != nil {
		return nil, err
	}

	o.logger.Info().Int64("work_item", item.ID).Str("merge_sha", item.MergeCommitSHA).Msg("work item completed")
	return item, nil
}

// Delete removes a work item and, best-effort, its git branch. The working
// copy is switched to the trunk first so the branch is deletable. Branch
// cleanup failures never block the delete; they surface as a Warning.
// Commit records cascade with the row.
func (o *Orchestrator) Delete(ctx context.Context, id int64) (*Warning, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	var warning *Warning
	if item.Branch != "" {
		guard, lockErr := o.lock(ctx)
		if lockErr != nil {
			return nil, lockErr
		}

		if err = o.git.Checkout(ctx, o.trunk); err != nil {
			warning = &Warning{Op: "checkout trunk", Err: err}
		} else if err = o.git.DeleteBranch(ctx, item.Branch); err != nil {
			warning = &Warning{Op: "delete branch", Err: err}
		}
		guard.release()

		if warning != nil {
			o.logger.Warn().Err(warning.Err).Str("branch", item.Branch).Msg("branch cleanup failed; deleting work item anyway")
		}
	}

	if err = o.store.DeleteWorkItem(ctx, id); err != nil {
		return nil, err
	}

	o.logger.Info().Int64("work_item", id).Msg("work item deleted")
	return warning, nil
}

// Detail is a work item together with its recorded and live git history.
type Detail struct {
	Item          *domain.WorkItem       `json:"item"`
	CommitRecords []*domain.CommitRecord `json:"commit_records"`
	BranchCommits []git.Commit           `json:"branch_commits"`
	BranchMerged  bool                   `json:"branch_merged"`
}

// Detail loads a work item with its commit records and the live state of its
// branch. The merged flag reflects the repository now, not the stored column.
func (o *Orchestrator) Detail(ctx context.Context, id int64) (*Detail, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	item, err := o.store.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := o.store.ListCommitRecords(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Item: item, CommitRecords: records, BranchCommits: []git.Commit{}}

	if item.Branch != "" {
		// Branch may have been deleted out of band; live lookups are
		// best-effort and fall back to empty history.
		if commits, cErr := o.git.CommitsAhead(ctx, item.Branch, o.trunk, constants.BranchCommitsLimit); cErr == nil {
			detail.BranchCommits = commits
		}
		if merged, mErr := o.git.IsMerged(ctx, item.Branch, o.trunk); mErr == nil {
			detail.BranchMerged = merged
			item.BranchMerged = merged
		}
	}

	return detail, nil
}

// Dashboard summarizes the work queue and repository state.
type Dashboard struct {
	Active          []*domain.WorkItem `json:"active"`
	RecentlyDone    []*domain.WorkItem `json:"recently_done"`
	TotalComplete   int                `json:"total_complete"`
	CurrentBranch   string             `json:"current_branch"`
	ActiveEndpoints int                `json:"active_endpoints"`
}

// recentlyDoneLimit caps the completed items shown on the dashboard.
const recentlyDoneLimit = 5

// Dashboard loads active work (planning and in-progress), the most recently
// completed items, and the current git branch.
func (o *Orchestrator) Dashboard(ctx context.Context) (*Dashboard, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	all, err := o.store.ListWorkItems(ctx, "")
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Active: []*domain.WorkItem{}, RecentlyDone: []*domain.WorkItem{}}
	for _, item := range all {
		switch item.Status {
		case domain.StatusPlanning, domain.StatusInProgress:
			d.Active = append(d.Active, item)
		case domain.StatusComplete:
			d.TotalComplete++
			if len(d.RecentlyDone) < recentlyDoneLimit {
				d.RecentlyDone = append(d.RecentlyDone, item)
			}
		case domain.StatusCancelled:
			// Reserved state; nothing transitions into it.
		}
	}

	if branch, bErr := o.git.CurrentBranch(ctx); bErr == nil {
		d.CurrentBranch = branch
	}

	return d, nil
}

// lockGuard wraps an optional flock guard so callers can release
// unconditionally.
type lockGuard struct {
	guard *flock.Guard
}

func (g *lockGuard) release() {
	if g.guard != nil {
		g.guard.Release()
	}
}

// lock serializes checkout-dependent operations across processes.
func (o *Orchestrator) lock(ctx context.Context) (*lockGuard, error) {
	if o.lockPath == "" {
		return &lockGuard{}, nil
	}
	guard, err := flock.Acquire(ctx, o.lockPath, constants.RepoLockTimeout)
	if err != nil {
		return nil, err
	}
	return &lockGuard{guard: guard}, nil
}

// containsPath reports whether paths includes target.
func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}
	return false
}
