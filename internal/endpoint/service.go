// Package endpoint manages monitored endpoints: creation through the full
// work item workflow (branch, documentation, changelog, commit, initial
// probe) and ongoing health checks.
package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/calcifer/internal/changelog"
	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/ctxutil"
	"github.com/mrz1836/calcifer/internal/docs"
	"github.com/mrz1836/calcifer/internal/domain"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
	"github.com/mrz1836/calcifer/internal/git"
	"github.com/mrz1836/calcifer/internal/healthcheck"
	"github.com/mrz1836/calcifer/internal/store"
	"github.com/mrz1836/calcifer/internal/work"
)

// defaultCheckInterval is the probe interval when none is given.
const defaultCheckInterval = 300

// Config collects the dependencies of a Service.
type Config struct {
	// Store persists endpoints. Required.
	Store store.Store

	// Work drives the work item created for each new endpoint. Required.
	Work *work.Orchestrator

	// Git runs repository operations. Required.
	Git git.Runner

	// Changelog maintains the repository change log. Required.
	Changelog *changelog.Writer

	// Engine probes endpoints. Required.
	Engine *healthcheck.Engine

	// Docs writes endpoint runbooks. Required.
	Docs *docs.Manager

	// Clock is the time source. Defaults to the real clock.
	Clock clock.Clock

	// ChangelogPath is the change log path relative to the repository root.
	ChangelogPath string

	// Logger receives structured operation logs.
	Logger zerolog.Logger
}

// Service coordinates endpoint lifecycle across the store, the work item
// orchestrator, git, and the health check engine.
type Service struct {
	store         store.Store
	work          *work.Orchestrator
	git           git.Runner
	changelog     *changelog.Writer
	engine        *healthcheck.Engine
	docs          *docs.Manager
	clk           clock.Clock
	changelogPath string
	logger        zerolog.Logger
}

// New creates a Service, validating required dependencies.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil || cfg.Work == nil || cfg.Git == nil ||
		cfg.Changelog == nil || cfg.Engine == nil || cfg.Docs == nil {
		return nil, fmt.Errorf("endpoint service dependencies incomplete: %w", calciferrors.ErrEmptyValue)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}

	return &Service{
		store:         cfg.Store,
		work:          cfg.Work,
		git:           cfg.Git,
		changelog:     cfg.Changelog,
		engine:        cfg.Engine,
		docs:          cfg.Docs,
		clk:           cfg.Clock,
		changelogPath: cfg.ChangelogPath,
		logger:        cfg.Logger,
	}, nil
}

// CreateRequest carries the inputs for a new monitored endpoint.
type CreateRequest struct {
	Name                 string
	Type                 domain.EndpointType
	Target               string
	Port                 *int
	CheckIntervalSeconds int
	Description          string
	ServiceID            *int64
}

// CreateResult reports everything the creation workflow produced.
type CreateResult struct {
	Endpoint *domain.Endpoint
	WorkItem *domain.WorkItem
	Up       bool
	Warnings []work.Warning
}

// CreateWithWorkItem creates an endpoint through the full workflow:
//
//  1. Create a work item (with its branch) tracking the addition.
//  2. Generate and write the endpoint runbook under docs/.
//  3. Persist the endpoint row linked to the work item.
//  4. Add a change log entry and commit both files on the work branch.
//  5. Run the initial health check and record the observation.
//  6. Write a summary into the work item notes and auto-complete the
//     checklist steps the workflow itself performed.
//
// Git failures along the way degrade to warnings; the endpoint and work
// item always come into existence together.
func (s *Service) CreateWithWorkItem(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("endpoint name is required: %w", calciferrors.ErrEmptyValue)
	}
	if strings.TrimSpace(req.Target) == "" {
		return nil, fmt.Errorf("endpoint target is required: %w", calciferrors.ErrEmptyValue)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("endpoint type %q: %w", req.Type, calciferrors.ErrUnknownEndpointType)
	}
	if req.CheckIntervalSeconds <= 0 {
		req.CheckIntervalSeconds = defaultCheckInterval
	}

	if _, err := s.store.GetEndpointByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("endpoint %q: %w", req.Name, calciferrors.ErrDuplicateName)
	}

	result := &CreateResult{}

	item, warning, err := s.work.Create(ctx, work.CreateRequest{
		Title:       fmt.Sprintf("Add monitoring endpoint: %s", req.Name),
		Category:    domain.CategoryService,
		ActionType:  domain.ActionNew,
		Description: fmt.Sprintf("Create monitoring endpoint for %s target: %s", req.Type, req.Target),
		ServiceID:   req.ServiceID,
	})
	if err != nil {
		return nil, err
	}
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}
	result.WorkItem = item

	now := s.clk.Now()
	docContent := GenerateDoc(req.Name, req.Type, req.Target, req.Port, req.Description, now)
	docPath, err := s.docs.Create(DocFileName(req.Name), docContent)
	if err != nil {
		return nil, err
	}

	ep := &domain.Endpoint{
		Name:                 req.Name,
		Type:                 req.Type,
		Target:               req.Target,
		Port:                 req.Port,
		CheckIntervalSeconds: req.CheckIntervalSeconds,
		Status:               domain.EndpointStatusUnknown,
		Description:          req.Description,
		DocPath:              docPath,
		WorkItemID:           &item.ID,
		ServiceID:            req.ServiceID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err = s.store.CreateEndpoint(ctx, ep); err != nil {
		return nil, err
	}
	result.Endpoint = ep

	if w := s.commitCreation(ctx, item, req, docPath); w != nil {
		result.Warnings = append(result.Warnings, *w)
	}

	result.Up = s.engine.Check(ctx, ep)
	if err = s.store.UpdateEndpoint(ctx, ep); err != nil {
		return nil, err
	}

	notes := buildNotes(ep, result.Up, docPath, s.clk.Now())
	if _, err = s.work.UpdateNotes(ctx, item.ID, notes); err != nil {
		return nil, err
	}

	if err = s.completeWorkflowSteps(ctx, item.ID, result.Up); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("endpoint", ep.Name).
		Int64("work_item", item.ID).
		Bool("up", result.Up).
		Msg("endpoint created")
	return result, nil
}

// commitCreation writes the change log entry and commits it together with
// the generated runbook on the work branch. Failures degrade to a warning.
func (s *Service) commitCreation(ctx context.Context, item *domain.WorkItem, req CreateRequest, docPath string) *work.Warning {
	entry := fmt.Sprintf("Add monitoring endpoint: %s (%s - %s)", req.Name, req.Type, req.Target)
	author := s.git.AuthorName(ctx)
	if err := s.changelog.Append(entry, author, item.TypeLabel()); err != nil {
		return &work.Warning{Op: "update change log", Err: err}
	}

	if err := s.git.Add(ctx, []string{s.changelogPath, docPath}); err != nil {
		return &work.Warning{Op: "stage endpoint files", Err: err}
	}

	message := fmt.Sprintf("Add monitoring endpoint: %s", req.Name)
	sha, err := s.git.CommitAll(ctx, message)
	if err != nil {
		return &work.Warning{Op: "commit endpoint files", Err: err}
	}

	record := &domain.CommitRecord{
		WorkItemID:  item.ID,
		SHA:         sha,
		Message:     message,
		CommittedAt: s.clk.Now(),
	}
	if err = s.store.AddCommitRecord(ctx, record); err != nil {
		return &work.Warning{Op: "record commit", Err: err}
	}
	return nil
}

// completeWorkflowSteps marks the checklist steps the workflow performed:
// the first four are always done, the fifth (verification) only when the
// initial probe saw the endpoint up.
func (s *Service) completeWorkflowSteps(ctx context.Context, workItemID int64, up bool) error {
	item, err := s.store.GetWorkItem(ctx, workItemID)
	if err != nil {
		return err
	}

	for i := 0; i < 4 && i < len(item.Checklist); i++ {
		item.Checklist[i].Done = true
	}
	if len(item.Checklist) > 4 {
		item.Checklist[4].Done = up
	}

	return s.store.UpdateWorkItem(ctx, item)
}

// monitorConfig is the configuration block rendered into the work notes.
type monitorConfig struct {
	CheckType string `json:"check_type"`
	Target    string `json:"target"`
	Port      *int   `json:"port"`
	Interval  int    `json:"interval"`
	Timeout   int    `json:"timeout"`
	Retries   int    `json:"retries"`
}

// buildNotes renders the work item notes summarizing what the endpoint
// creation workflow did and the initial probe outcome.
func buildNotes(ep *domain.Endpoint, up bool, docPath string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Endpoint: %s\n\n", ep.Name)
	fmt.Fprintf(&b, "**Type:** %s\n", ep.Type)
	fmt.Fprintf(&b, "**Target:** %s\n", ep.Target)
	if ep.Port != nil {
		fmt.Fprintf(&b, "**Port:** %d\n", *ep.Port)
	}
	fmt.Fprintf(&b, "**Check Interval:** %ds\n", ep.CheckIntervalSeconds)
	if up {
		b.WriteString("**Initial Status:** UP\n\n")
	} else {
		b.WriteString("**Initial Status:** DOWN\n\n")
	}

	b.WriteString("## Generated Files\n")
	fmt.Fprintf(&b, "- Documentation: `%s` (committed)\n", docPath)
	b.WriteString("- Change log: updated and committed\n\n")

	cfg, _ := json.MarshalIndent(monitorConfig{
		CheckType: string(ep.Type),
		Target:    ep.Target,
		Port:      ep.Port,
		Interval:  ep.CheckIntervalSeconds,
		Timeout:   5,
		Retries:   3,
	}, "", "  ")
	b.WriteString("## Configuration\n```json\n")
	b.Write(cfg)
	b.WriteString("\n```\n\n")

	b.WriteString("## Initial Check Results\n")
	fmt.Fprintf(&b, "- Performed: %s\n", now.Format("2006-01-02 15:04:05"))
	if up {
		b.WriteString("- Status: UP - endpoint is reachable\n\n")
	} else {
		b.WriteString("- Status: DOWN - endpoint is not reachable\n\n")
	}

	b.WriteString("## Next Steps\n")
	b.WriteString("1. Documentation created and committed\n")
	b.WriteString("2. Monitoring configured\n")
	if up {
		b.WriteString("3. Endpoint verified as UP\n")
	} else {
		b.WriteString("3. Investigate connectivity issue\n")
	}
	b.WriteString("4. Review the work item and mark complete when satisfied\n")

	return b.String()
}

// Get fetches one endpoint by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Endpoint, error) {
	return s.store.GetEndpoint(ctx, id)
}

// GetByName fetches one endpoint by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Endpoint, error) {
	return s.store.GetEndpointByName(ctx, name)
}

// List returns all endpoints ordered by name.
func (s *Service) List(ctx context.Context) ([]*domain.Endpoint, error) {
	return s.store.ListEndpoints(ctx)
}

// Check probes one endpoint now and persists the observation.
func (s *Service) Check(ctx context.Context, id int64) (*domain.Endpoint, bool, error) {
	ep, err := s.store.GetEndpoint(ctx, id)
	if err != nil {
		return nil, false, err
	}

	up := s.engine.Check(ctx, ep)
	if err = s.store.UpdateEndpoint(ctx, ep); err != nil {
		return nil, false, err
	}
	return ep, up, nil
}

// CheckAll probes every endpoint concurrently and persists the observations.
func (s *Service) CheckAll(ctx context.Context) ([]*domain.Endpoint, error) {
	endpoints, err := s.store.ListEndpoints(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.engine.CheckAll(ctx, endpoints); err != nil {
		return nil, err
	}

	for _, ep := range endpoints {
		if err = s.store.UpdateEndpoint(ctx, ep); err != nil {
			return nil, err
		}
	}
	return endpoints, nil
}

// Delete removes an endpoint record. The linked work item is left alone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteEndpoint(ctx, id)
}
