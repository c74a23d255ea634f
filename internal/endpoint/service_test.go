package endpoint

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/changelog"
	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/docs"
	"github.com/mrz1836/calcifer/internal/domain"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
	"github.com/mrz1836/calcifer/internal/git"
	"github.com/mrz1836/calcifer/internal/healthcheck"
	"github.com/mrz1836/calcifer/internal/store"
	"github.com/mrz1836/calcifer/internal/work"
)

// stubRunner is a minimal in-memory git.Runner for endpoint workflow tests.
type stubRunner struct {
	branches      map[string]bool
	currentBranch string
	staged        [][]string
	commits       int
}

var _ git.Runner = (*stubRunner)(nil)

func newStubRunner() *stubRunner {
	return &stubRunner{branches: map[string]bool{"main": true}, currentBranch: "main"}
}

func (r *stubRunner) CurrentBranch(_ context.Context) (string, error) { return r.currentBranch, nil }

func (r *stubRunner) CreateBranch(_ context.Context, name string, checkout bool) error {
	r.branches[name] = true
	if checkout {
		r.currentBranch = name
	}
	return nil
}

func (r *stubRunner) Checkout(_ context.Context, name string) error {
	r.currentBranch = name
	return nil
}

func (r *stubRunner) ListBranches(_ context.Context) ([]string, error) { return nil, nil }

func (r *stubRunner) BranchExists(_ context.Context, name string) (bool, error) {
	return r.branches[name], nil
}

func (r *stubRunner) DeleteBranch(_ context.Context, name string) error {
	delete(r.branches, name)
	return nil
}

func (r *stubRunner) BranchInfo(_ context.Context, name string) (*git.BranchInfo, error) {
	return &git.BranchInfo{Exists: r.branches[name]}, nil
}

func (r *stubRunner) IsMerged(_ context.Context, _, _ string) (bool, error) { return false, nil }

func (r *stubRunner) CommitsAhead(_ context.Context, _, _ string, _ int) ([]git.Commit, error) {
	return nil, nil
}

func (r *stubRunner) Add(_ context.Context, paths []string) error {
	r.staged = append(r.staged, paths)
	return nil
}

func (r *stubRunner) CommitAll(_ context.Context, _ string) (string, error) {
	r.commits++
	return fmt.Sprintf("ep%05d", r.commits), nil
}

func (r *stubRunner) Merge(_ context.Context, _, _ string) (string, error) { return "", nil }

func (r *stubRunner) DiffNameOnly(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}

func (r *stubRunner) AuthorName(_ context.Context) string { return "Alice" }

func (r *stubRunner) HeadSHA(_ context.Context) (string, error) { return "head", nil }

type fixture struct {
	svc     *Service
	store   *store.SQLiteStore
	runner  *stubRunner
	repoDir string
}

var testNow = time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repoDir := t.TempDir()
	s, err := store.Open(filepath.Join(repoDir, ".calcifer", "calcifer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	runner := newStubRunner()
	clk := clock.Fixed{T: testNow}
	writer := changelog.NewWriter(filepath.Join(repoDir, "docs", "CHANGES.md"), clk)

	orch, err := work.New(work.Config{
		Store:         s,
		Git:           runner,
		Changelog:     writer,
		Clock:         clk,
		ChangelogPath: "docs/CHANGES.md",
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)

	svc, err := New(Config{
		Store:         s,
		Work:          orch,
		Git:           runner,
		Changelog:     writer,
		Engine:        healthcheck.New(healthcheck.Config{Timeout: 2 * time.Second, Clock: clk, Logger: zerolog.Nop()}),
		Docs:          docs.NewManager(repoDir, "docs"),
		Clock:         clk,
		ChangelogPath: "docs/CHANGES.md",
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)

	return &fixture{svc: svc, store: s, runner: runner, repoDir: repoDir}
}

// listenPort returns a port with a live listener for "up" probes.
func listenPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

// closedPort returns a port guaranteed to have no listener.
func closedPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestDocFileName(t *testing.T) {
	assert.Equal(t, "endpoint-api.md", DocFileName("api"))
	assert.Equal(t, "endpoint-edge-proxy.md", DocFileName("Edge Proxy"))
}

func TestGenerateDoc(t *testing.T) {
	port := 8080
	doc := GenerateDoc("api", domain.EndpointTCP, "10.0.0.5", &port, "", testNow)

	assert.Contains(t, doc, "# Endpoint: api")
	assert.Contains(t, doc, "**Type:** TCP")
	assert.Contains(t, doc, "**Check Method:** TCP Port 8080")
	assert.Contains(t, doc, "**Port:** `8080`")
	assert.Contains(t, doc, "Endpoint monitoring for api.")
	assert.Contains(t, doc, "ping 10.0.0.5")
	assert.Contains(t, doc, "nc -zv 10.0.0.5 8080")
	assert.Contains(t, doc, "**Created:** 2026-08-31")
}

func TestCreateWithWorkItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	port := listenPort(t)

	result, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name:   "api",
		Type:   domain.EndpointTCP,
		Target: "127.0.0.1",
		Port:   &port,
	})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	assert.True(t, result.Up)

	// Work item carries the standard title and the allocated branch.
	item := result.WorkItem
	assert.Equal(t, "Add monitoring endpoint: api", item.Title)
	assert.Equal(t, domain.CategoryService, item.Category)
	assert.Equal(t, domain.ActionNew, item.ActionType)
	assert.Equal(t, "Create monitoring endpoint for tcp target: 127.0.0.1", item.Description)
	assert.Equal(t, "service/new/add-monitoring-endpoint-api-20260831", item.Branch)

	// Endpoint row is linked and carries the initial observation.
	ep, err := f.store.GetEndpointByName(ctx, "api")
	require.NoError(t, err)
	require.NotNil(t, ep.WorkItemID)
	assert.Equal(t, item.ID, *ep.WorkItemID)
	assert.Equal(t, filepath.Join("docs", "endpoint-api.md"), ep.DocPath)
	assert.Equal(t, domain.EndpointStatusUp, ep.Status)
	assert.Equal(t, 300, ep.CheckIntervalSeconds, "default interval applies")
	require.NotNil(t, ep.LastCheck)

	// Runbook exists on disk.
	doc, err := os.ReadFile(filepath.Join(f.repoDir, "docs", "endpoint-api.md")) //nolint:gosec // test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Endpoint: api")

	// Change log got the entry and both files were staged together.
	log, err := os.ReadFile(filepath.Join(f.repoDir, "docs", "CHANGES.md")) //nolint:gosec // test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(log), "## 2026-08-31 - Alice - New Service")
	assert.Contains(t, string(log), "- Add monitoring endpoint: api (tcp - 127.0.0.1)")
	require.Len(t, f.runner.staged, 1)
	assert.ElementsMatch(t, []string{"docs/CHANGES.md", filepath.Join("docs", "endpoint-api.md")}, f.runner.staged[0])

	// One commit record for the creation commit.
	records, err := f.store.ListCommitRecords(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Add monitoring endpoint: api", records[0].Message)

	// Workflow steps auto-completed; verification step done because up.
	stored, err := f.store.GetWorkItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, stored.Checklist, 8)
	for i := 0; i < 5; i++ {
		assert.True(t, stored.Checklist[i].Done, "step %d should be done", i)
	}
	for i := 5; i < 8; i++ {
		assert.False(t, stored.Checklist[i].Done, "step %d should remain open", i)
	}
	assert.Contains(t, stored.Notes, "**Initial Status:** UP")
	assert.Contains(t, stored.Notes, "Endpoint verified as UP")
}

func TestCreateWithWorkItemDownEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	port := closedPort(t)

	result, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name:   "api",
		Type:   domain.EndpointTCP,
		Target: "127.0.0.1",
		Port:   &port,
	})
	require.NoError(t, err)
	assert.False(t, result.Up)

	ep, err := f.store.GetEndpointByName(ctx, "api")
	require.NoError(t, err)
	assert.Equal(t, domain.EndpointStatusDown, ep.Status)
	assert.Equal(t, 1, ep.ConsecutiveFailures)
	assert.NotEmpty(t, ep.LastError)

	stored, err := f.store.GetWorkItem(ctx, *ep.WorkItemID)
	require.NoError(t, err)
	assert.False(t, stored.Checklist[4].Done, "verification step stays open when down")
	assert.Contains(t, stored.Notes, "**Initial Status:** DOWN")
	assert.Contains(t, stored.Notes, "Investigate connectivity issue")
}

func TestCreateWithWorkItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{Name: " ", Type: domain.EndpointTCP, Target: "x"})
	require.ErrorIs(t, err, calciferrors.ErrEmptyValue)

	_, err = f.svc.CreateWithWorkItem(ctx, CreateRequest{Name: "api", Type: "snmp", Target: "x"})
	require.ErrorIs(t, err, calciferrors.ErrUnknownEndpointType)

	_, err = f.svc.CreateWithWorkItem(ctx, CreateRequest{Name: "api", Type: domain.EndpointTCP, Target: ""})
	require.ErrorIs(t, err, calciferrors.ErrEmptyValue)
}

func TestCreateWithWorkItemDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	port := closedPort(t)

	_, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name: "api", Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &port,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name: "api", Type: domain.EndpointTCP, Target: "127.0.0.2", Port: &port,
	})
	require.ErrorIs(t, err, calciferrors.ErrDuplicateName)
}

func TestCheckPersistsObservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	port := closedPort(t)

	created, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name: "api", Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &port,
	})
	require.NoError(t, err)
	require.False(t, created.Up)

	_, up, err := f.svc.Check(ctx, created.Endpoint.ID)
	require.NoError(t, err)
	assert.False(t, up)

	stored, err := f.store.GetEndpoint(ctx, created.Endpoint.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ConsecutiveFailures, "initial check plus manual check")
}

func TestCheckAllPersistsAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	upPort := listenPort(t)
	downPort := closedPort(t)

	_, err := f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name: "api", Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &upPort,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateWithWorkItem(ctx, CreateRequest{
		Name: "cache", Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &downPort,
	})
	require.NoError(t, err)

	endpoints, err := f.svc.CheckAll(ctx)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	api, err := f.store.GetEndpointByName(ctx, "api")
	require.NoError(t, err)
	assert.Equal(t, domain.EndpointStatusUp, api.Status)

	cache, err := f.store.GetEndpointByName(ctx, "cache")
	require.NoError(t, err)
	assert.Equal(t, domain.EndpointStatusDown, cache.Status)
}
