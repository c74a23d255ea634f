// Package domain defines the core types shared across Calcifer packages.
// This package holds data structures only; behavior lives in the packages
// that operate on them (work, store, git, healthcheck).
package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category classifies what kind of infrastructure a work item touches.
type Category string

// Valid work item categories.
const (
	CategoryPlatformFeature Category = "platform_feature"
	CategoryIntegration     Category = "integration"
	CategoryService         Category = "service"
	CategoryDocumentation   Category = "documentation"
)

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPlatformFeature,
		CategoryIntegration,
		CategoryService,
		CategoryDocumentation,
	}
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlatformFeature, CategoryIntegration, CategoryService, CategoryDocumentation:
		return true
	default:
		return false
	}
}

// ActionType classifies the kind of change a work item makes.
type ActionType string

// Valid work item action types.
const (
	ActionNew    ActionType = "new"
	ActionChange ActionType = "change"
	ActionFix    ActionType = "fix"
)

// ActionTypes returns all valid action types in display order.
func ActionTypes() []ActionType {
	return []ActionType{ActionNew, ActionChange, ActionFix}
}

// Valid reports whether the action type is one of the known values.
func (a ActionType) Valid() bool {
	switch a {
	case ActionNew, ActionChange, ActionFix:
		return true
	default:
		return false
	}
}

// Status is the lifecycle state of a work item.
type Status string

// Work item lifecycle states. StatusCancelled is reserved: the value exists
// but no code path transitions into it.
const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusCancelled  Status = "cancelled"
)

// ChecklistItem is a single required step attached to a work item.
// Order within the checklist is significant and fixed at creation time;
// items may only be toggled, never added or removed.
type ChecklistItem struct {
	// Description is the step text. Serialized as "item" for compatibility
	// with the stored checklist format.
	Description string `json:"item"`

	// Done marks the step as completed.
	Done bool `json:"done"`
}

// WorkItem is a tracked unit of infrastructure change bound to a git branch,
// a checklist of required steps, and a commit history.
type WorkItem struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Title is the human-readable summary of the change.
	Title string `json:"title"`

	// Category classifies the infrastructure area.
	Category Category `json:"category"`

	// ActionType classifies the kind of change.
	ActionType ActionType `json:"action_type"`

	// Status is the lifecycle state.
	Status Status `json:"status"`

	// Description is free-form detail entered at creation.
	Description string `json:"description,omitempty"`

	// Notes is free-form working documentation, capped at 2000 characters.
	Notes string `json:"notes,omitempty"`

	// Branch is the git branch allocated at creation. Immutable and unique
	// across all work items once assigned. Empty if allocation never ran.
	Branch string `json:"branch,omitempty"`

	// Checklist is the ordered list of required steps.
	Checklist []ChecklistItem `json:"checklist"`

	// BranchMerged records whether the branch has been merged into the trunk.
	BranchMerged bool `json:"branch_merged"`

	// MergeCommitSHA is the merge commit hash, set when the merge materializes.
	MergeCommitSHA string `json:"merge_commit_sha,omitempty"`

	// StartedAt is when the work item was created.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is set when the work item transitions to complete.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// ServiceID optionally links the work item to a service catalog entry.
	ServiceID *int64 `json:"service_id,omitempty"`
}

// actionLabels maps action types to their display form.
var actionLabels = map[ActionType]string{
	ActionNew:    "New",
	ActionChange: "Change",
	ActionFix:    "Fix",
}

// categoryLabels maps categories to their display form.
var categoryLabels = map[Category]string{
	CategoryPlatformFeature: "Platform Feature",
	CategoryIntegration:     "Integration",
	CategoryService:         "Service",
	CategoryDocumentation:   "Document",
}

// titleCaser renders unknown categories and actions in title case.
var titleCaser = cases.Title(language.English)

// TypeLabel returns the humanized work type for display and changelog
// headers, e.g. "New Service" or "Platform Feature Fix".
func (w *WorkItem) TypeLabel() string {
	action, ok := actionLabels[w.ActionType]
	if !ok {
		action = titleCaser.String(string(w.ActionType))
	}

	cat, ok := categoryLabels[w.Category]
	if !ok {
		cat = titleCaser.String(strings.ReplaceAll(string(w.Category), "_", " "))
	}

	if w.ActionType == ActionNew {
		return "New " + cat
	}
	return cat + " " + action
}

// IncompleteSteps returns the number of checklist items not yet done.
func (w *WorkItem) IncompleteSteps() int {
	n := 0
	for _, item := range w.Checklist {
		if !item.Done {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the work item. The checklist slice is copied
// so callers can toggle items without sharing state.
func (w *WorkItem) Clone() *WorkItem {
	if w == nil {
		return nil
	}
	clone := *w
	clone.Checklist = make([]ChecklistItem, len(w.Checklist))
	copy(clone.Checklist, w.Checklist)
	if w.CompletedAt != nil {
		t := *w.CompletedAt
		clone.CompletedAt = &t
	}
	if w.ServiceID != nil {
		id := *w.ServiceID
		clone.ServiceID = &id
	}
	return &clone
}

// CommitRecord is an append-only link between a work item and a git commit.
// Records cascade-delete with their owning work item; the underlying git
// commits are never rewritten.
type CommitRecord struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// WorkItemID is the owning work item.
	WorkItemID int64 `json:"work_item_id"`

	// SHA is the full commit hash.
	SHA string `json:"sha"`

	// Message is the commit message.
	Message string `json:"message"`

	// CommittedAt is when the record was created.
	CommittedAt time.Time `json:"committed_at"`
}
