package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/calcifer/internal/changelog"
	"github.com/mrz1836/calcifer/internal/config"
	"github.com/mrz1836/calcifer/internal/docs"
	"github.com/mrz1836/calcifer/internal/endpoint"
	"github.com/mrz1836/calcifer/internal/errors"
	"github.com/mrz1836/calcifer/internal/git"
	"github.com/mrz1836/calcifer/internal/healthcheck"
	"github.com/mrz1836/calcifer/internal/store"
	"github.com/mrz1836/calcifer/internal/work"
)

// App wires the configuration, store, git runner, and services a command
// needs. Commands create one per invocation and close it when done.
type App struct {
	Config    *config.Config
	Store     store.Store
	Git       git.Runner
	Changelog *changelog.Writer
	Work      *work.Orchestrator
	Endpoints *endpoint.Service
	Docs      *docs.Manager

	logger zerolog.Logger
}

// newApp loads configuration and constructs the full service graph against
// the configured repository.
func newApp(ctx context.Context) (*App, error) {
	logger := GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	runner, err := git.NewRunner(ctx, cfg.Repo.Path)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	writer := changelog.NewWriter(cfg.ChangelogAbsPath(), nil)

	orch, err := work.New(work.Config{
		Store:         st,
		Git:           runner,
		Changelog:     writer,
		Trunk:         cfg.Repo.Trunk,
		ChangelogPath: cfg.Repo.ChangelogPath,
		LockPath:      cfg.LockPath(),
		Logger:        logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	engine := healthcheck.New(healthcheck.Config{
		Timeout:   cfg.Monitor.Timeout,
		UserAgent: cfg.Monitor.UserAgent,
		Logger:    logger,
	})

	docMgr := docs.NewManager(cfg.Repo.Path, cfg.Repo.DocsDir)

	endpoints, err := endpoint.New(endpoint.Config{
		Store:         st,
		Work:          orch,
		Git:           runner,
		Changelog:     writer,
		Engine:        engine,
		Docs:          docMgr,
		ChangelogPath: cfg.Repo.ChangelogPath,
		Logger:        logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Store:     st,
		Git:       runner,
		Changelog: writer,
		Work:      orch,
		Endpoints: endpoints,
		Docs:      docMgr,
		logger:    logger,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.logger.Debug().Err(err).Msg("failed to close store")
		}
	}
}

// Warn logs and prints a non-fatal operation warning.
func (a *App) Warn(w *work.Warning) {
	if w == nil {
		return
	}
	a.logger.Warn().Str("op", w.Op).Err(w.Err).Msg("operation degraded")
}

// wrapNotFound annotates not-found errors with the id the user gave.
func wrapNotFound(err error, id int64) error {
	return errors.Wrapf(err, "work item %d", id)
}
