// Package config loads Calcifer configuration from defaults, global and
// project config files, and environment variables, in ascending precedence.
package config

import (
	"time"

	"github.com/mrz1836/calcifer/internal/constants"
)

// Config is the full Calcifer configuration.
type Config struct {
	// Repo configures the managed git repository.
	Repo RepoConfig `mapstructure:"repo"`

	// Database configures the embedded store.
	Database DatabaseConfig `mapstructure:"database"`

	// Monitor configures endpoint health checks.
	Monitor MonitorConfig `mapstructure:"monitor"`

	// Log configures CLI logging.
	Log LogConfig `mapstructure:"log"`
}

// RepoConfig configures the managed git repository.
type RepoConfig struct {
	// Path is the repository root. Defaults to the current directory.
	Path string `mapstructure:"path"`

	// Trunk is the integration branch work branches merge into.
	Trunk string `mapstructure:"trunk"`

	// ChangelogPath is the change log file relative to the repository root.
	ChangelogPath string `mapstructure:"changelog_path"`

	// DocsDir is the documentation directory relative to the repository root.
	DocsDir string `mapstructure:"docs_dir"`
}

// DatabaseConfig configures the embedded store.
type DatabaseConfig struct {
	// Path is the SQLite database file. Empty means
	// {repo}/.calcifer/calcifer.db.
	Path string `mapstructure:"path"`
}

// MonitorConfig configures endpoint health checks.
type MonitorConfig struct {
	// Timeout bounds each probe.
	Timeout time.Duration `mapstructure:"timeout"`

	// UserAgent is sent on HTTP(S) probes.
	UserAgent string `mapstructure:"user_agent"`
}

// LogConfig configures CLI logging.
type LogConfig struct {
	// Level is the zerolog level name (trace, debug, info, warn, error).
	Level string `mapstructure:"level"`
}

// DefaultConfig returns a Config with the built-in defaults. These form the
// base layer that config files and environment variables override.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Path:          ".",
			Trunk:         constants.DefaultTrunkBranch,
			ChangelogPath: constants.DefaultChangelogPath,
			DocsDir:       constants.DefaultDocsDir,
		},
		Monitor: MonitorConfig{
			Timeout:   constants.DefaultProbeTimeout,
			UserAgent: constants.DefaultProbeUserAgent,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
