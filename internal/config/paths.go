package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/calcifer/internal/constants"
)

// GlobalConfigDir returns the user-wide Calcifer directory (~/.calcifer).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.CalciferHome), nil
}

// ProjectConfigPath returns the per-repository config file path
// (.calcifer/config.yaml relative to the working directory).
func ProjectConfigPath() string {
	return filepath.Join(constants.CalciferHome, "config.yaml")
}

// DatabasePath resolves the database file for a repository, honoring an
// explicit override from configuration.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Repo.Path, constants.CalciferHome, constants.DatabaseFileName)
}

// LockPath returns the repository lock file guarding checkout-dependent
// operations.
func (c *Config) LockPath() string {
	return filepath.Join(c.Repo.Path, constants.CalciferHome, constants.RepoLockFileName)
}

// ChangelogAbsPath returns the absolute change log path.
func (c *Config) ChangelogAbsPath() string {
	return filepath.Join(c.Repo.Path, c.Repo.ChangelogPath)
}

// LogFilePath returns the CLI log file inside the user-wide Calcifer
// directory.
func LogFilePath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
