package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/errors"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.Repo.Path)
	assert.Equal(t, "main", cfg.Repo.Trunk)
	assert.Equal(t, "docs/CHANGES.md", cfg.Repo.ChangelogPath)
	assert.Equal(t, "docs", cfg.Repo.DocsDir)
	assert.Equal(t, 5*time.Second, cfg.Monitor.Timeout)
	assert.Equal(t, "Calcifer-Monitor/1.0", cfg.Monitor.UserAgent)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromPathsDefaultsOnly(t *testing.T) {
	cfg, err := LoadFromPaths()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Repo, cfg.Repo)
	assert.Equal(t, DefaultConfig().Monitor, cfg.Monitor)
}

func TestLoadFromPathsFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `
repo:
  trunk: develop
monitor:
  timeout: 10s
`)

	cfg, err := LoadFromPaths(path)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Repo.Trunk)
	assert.Equal(t, 10*time.Second, cfg.Monitor.Timeout)
	assert.Equal(t, "docs/CHANGES.md", cfg.Repo.ChangelogPath, "unset keys keep defaults")
}

func TestLoadFromPathsLaterFileWins(t *testing.T) {
	global := writeConfigFile(t, t.TempDir(), `
repo:
  trunk: develop
  docs_dir: documentation
`)
	project := writeConfigFile(t, t.TempDir(), `
repo:
  trunk: release
`)

	cfg, err := LoadFromPaths(global, project)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Repo.Trunk, "project file overrides global")
	assert.Equal(t, "documentation", cfg.Repo.DocsDir, "global keys survive when project is silent")
}

func TestLoadFromPathsEnvWinsOverFiles(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `
repo:
  trunk: develop
`)
	t.Setenv("CALCIFER_REPO_TRUNK", "master")

	cfg, err := LoadFromPaths(path)
	require.NoError(t, err)

	assert.Equal(t, "master", cfg.Repo.Trunk)
}

func TestLoadFromPathsMissingFileIgnored(t *testing.T) {
	cfg, err := LoadFromPaths(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Repo.Trunk)
}

func TestLoadFromPathsInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "repo: [not: a: mapping\n")

	_, err := LoadFromPaths(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(_ *Config) {}, false},
		{"empty trunk", func(c *Config) { c.Repo.Trunk = " " }, true},
		{"empty changelog path", func(c *Config) { c.Repo.ChangelogPath = "" }, true},
		{"empty docs dir", func(c *Config) { c.Repo.DocsDir = "" }, true},
		{"zero timeout", func(c *Config) { c.Monitor.Timeout = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"valid debug level", func(c *Config) { c.Log.Level = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrConfigInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repo.Path = "/srv/infra"
	assert.Equal(t, filepath.Join("/srv/infra", ".calcifer", "calcifer.db"), cfg.DatabasePath())

	cfg.Database.Path = "/var/lib/calcifer.db"
	assert.Equal(t, "/var/lib/calcifer.db", cfg.DatabasePath(), "explicit path wins")
}

func TestLockPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repo.Path = "/srv/infra"
	assert.Equal(t, filepath.Join("/srv/infra", ".calcifer", "repo.lock"), cfg.LockPath())
}
