package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// newViperInstance creates a Viper instance with the CALCIFER_ environment
// prefix and the built-in defaults applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CALCIFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers the built-in defaults on a Viper instance.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("repo.path", def.Repo.Path)
	v.SetDefault("repo.trunk", def.Repo.Trunk)
	v.SetDefault("repo.changelog_path", def.Repo.ChangelogPath)
	v.SetDefault("repo.docs_dir", def.Repo.DocsDir)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("monitor.timeout", def.Monitor.Timeout)
	v.SetDefault("monitor.user_agent", def.Monitor.UserAgent)
	v.SetDefault("log.level", def.Log.Level)
}

// viperDecoderOption configures duration parsing for config values.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// isConfigNotFoundError reports whether err is viper's missing-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration from all sources with ascending precedence:
// built-in defaults, the global config (~/.calcifer/config.yaml), the
// project config (.calcifer/config.yaml), then CALCIFER_* environment
// variables. Missing config files are not an error.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, calciferrors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromPaths loads configuration from explicit file paths, in order of
// ascending precedence. Intended for tests.
func LoadFromPaths(paths ...string) (*Config, error) {
	v := newViperInstance()

	for _, path := range paths {
		if !fileExists(path) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, calciferrors.Wrapf(err, "failed to read config file %q", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, calciferrors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadGlobalConfig merges the user-wide config file when present.
func loadGlobalConfig(v *viper.Viper) error {
	dir, err := GlobalConfigDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no global config
	}

	path := filepath.Join(dir, "config.yaml")
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return calciferrors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges the per-repository config file when present.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return calciferrors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists reports whether the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
