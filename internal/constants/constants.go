// Package constants provides centralized constant values used throughout Calcifer.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by Calcifer for organizing data.
const (
	// CalciferHome is the hidden directory name where Calcifer stores all its data.
	// This directory is created in the user's home directory.
	CalciferHome = ".calcifer"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// DatabaseFileName is the SQLite database file that holds work items,
	// commit records, endpoints, and the service catalog.
	DatabaseFileName = "calcifer.db"

	// CLILogFileName is the global CLI log file name.
	CLILogFileName = "calcifer.log"

	// RepoLockFileName is the lock file guarding checkout-dependent git
	// operations against concurrent writers sharing one working copy.
	RepoLockFileName = "repo.lock"
)

// Git and changelog defaults.
const (
	// DefaultTrunkBranch is the integration branch feature branches merge into.
	DefaultTrunkBranch = "main"

	// DefaultChangelogPath is the changelog document path relative to the
	// repository root.
	DefaultChangelogPath = "docs/CHANGES.md"

	// DefaultDocsDir is the documentation directory relative to the
	// repository root.
	DefaultDocsDir = "docs"

	// BranchDateFormat is the date suffix appended to generated branch names.
	BranchDateFormat = "20060102"

	// TimeFormatCompact is the timestamp suffix used to disambiguate
	// colliding branch names.
	TimeFormatCompact = "20060102-150405"

	// ChangelogDateFormat is the date used in changelog section headers.
	ChangelogDateFormat = "2006-01-02"

	// BranchSlugMaxLen caps the sanitized title portion of a branch name.
	BranchSlugMaxLen = 30

	// DefaultAuthor is used when git has no user.name configured.
	DefaultAuthor = "System"
)

// Changelog document header lines. The writer never duplicates these.
const (
	// ChangelogHeaderTitle is the first line of the changelog document.
	ChangelogHeaderTitle = "# Change Log"

	// ChangelogHeaderSubtitle is the second line of the changelog document.
	ChangelogHeaderSubtitle = "All infrastructure changes are logged here."
)

// Limits and timeouts.
const (
	// NotesMaxLen caps stored work item notes.
	NotesMaxLen = 2000

	// DefaultProbeTimeout is the default per-probe timeout for endpoint
	// health checks.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultProbeUserAgent identifies Calcifer in HTTP health checks.
	DefaultProbeUserAgent = "Calcifer-Monitor/1.0"

	// BranchCommitsLimit is the maximum number of branch commits listed
	// when showing work item detail.
	BranchCommitsLimit = 20

	// RepoLockTimeout is the maximum duration to wait for the repository
	// lock before giving up.
	RepoLockTimeout = 5 * time.Second
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of retained files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
