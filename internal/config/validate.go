package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/calcifer/internal/errors"
)

// Validate checks a loaded configuration for values the rest of the program
// cannot work with. All failures wrap ErrConfigInvalid.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Repo.Path) == "" {
		return fmt.Errorf("%w: repo.path cannot be empty", errors.ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Repo.Trunk) == "" {
		return fmt.Errorf("%w: repo.trunk cannot be empty", errors.ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Repo.ChangelogPath) == "" {
		return fmt.Errorf("%w: repo.changelog_path cannot be empty", errors.ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Repo.DocsDir) == "" {
		return fmt.Errorf("%w: repo.docs_dir cannot be empty", errors.ErrConfigInvalid)
	}
	if cfg.Monitor.Timeout <= 0 {
		return fmt.Errorf("%w: monitor.timeout must be positive, got %s",
			errors.ErrConfigInvalid, cfg.Monitor.Timeout)
	}
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: unknown log.level %q", errors.ErrConfigInvalid, cfg.Log.Level)
	}
	return nil
}
