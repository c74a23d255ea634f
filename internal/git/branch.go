// Package git provides local git operations for Calcifer.
// This file provides branch naming utilities for work item branches.
package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mrz1836/calcifer/internal/constants"
	"github.com/mrz1836/calcifer/internal/ctxutil"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// slugRegex matches any character that is NOT a lowercase letter, digit, or hyphen.
var slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)

// Slug sanitizes a work item title for use in a branch name by:
// - Converting to lowercase
// - Replacing non-alphanumeric characters with hyphens
// - Collapsing consecutive hyphens
// - Truncating to the maximum slug length
// - Trimming leading/trailing hyphens
//
// Example: "Add monitoring endpoint: api" -> "add-monitoring-endpoint-api"
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugRegex.ReplaceAllString(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if len(s) > constants.BranchSlugMaxLen {
		s = strings.TrimRight(s[:constants.BranchSlugMaxLen], "-")
	}
	return s
}

// WorkItemBranchName builds the deterministic branch name for a work item:
// "{category}/{action}/{slug}-{YYYYMMDD}".
//
// Example: WorkItemBranchName("service", "new", "Add proxy", date) ->
// "service/new/add-proxy-20260115"
func WorkItemBranchName(category, action, title string, date time.Time) string {
	slug := Slug(title)
	if slug == "" {
		slug = "unnamed"
	}
	return fmt.Sprintf("%s/%s/%s-%s", category, action, slug, date.Format(constants.BranchDateFormat))
}

// BranchExistsChecker is the subset of Runner needed for collision detection.
type BranchExistsChecker interface {
	BranchExists(ctx context.Context, name string) (bool, error)
}

// UniqueBranchName returns baseName if no such branch exists, otherwise
// disambiguates with a compact timestamp suffix. Same-day duplicate titles
// would otherwise collide on the deterministic name.
func UniqueBranchName(ctx context.Context, checker BranchExistsChecker, baseName string, now time.Time) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	exists, err := checker.BranchExists(ctx, baseName)
	if err != nil {
		return "", err
	}
	if !exists {
		return baseName, nil
	}

	uniqueName := fmt.Sprintf("%s-%s", baseName, now.Format(constants.TimeFormatCompact))

	// Verify the suffixed name doesn't also exist (extremely unlikely but possible)
	exists, err = checker.BranchExists(ctx, uniqueName)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("branch '%s' already exists and timestamp variant also exists: %w",
			baseName, calciferrors.ErrBranchExists)
	}

	return uniqueName, nil
}
