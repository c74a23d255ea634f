package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/domain"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "calcifer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleWorkItem() *domain.WorkItem {
	return &domain.WorkItem{
		Title:      "Upgrade proxy",
		Category:   domain.CategoryService,
		ActionType: domain.ActionChange,
		Status:     domain.StatusInProgress,
		Branch:     "service/change/upgrade-proxy-20260831",
		Checklist: []domain.ChecklistItem{
			{Description: "Backup existing configuration"},
			{Description: "Make configuration changes"},
		},
		StartedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
}

func TestWorkItemRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, item))
	require.Positive(t, item.ID)

	got, err := s.GetWorkItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)
	assert.Equal(t, domain.CategoryService, got.Category)
	assert.Equal(t, domain.ActionChange, got.ActionType)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, item.Branch, got.Branch)
	require.Len(t, got.Checklist, 2)
	assert.Equal(t, "Backup existing configuration", got.Checklist[0].Description)
	assert.False(t, got.Checklist[0].Done)
	assert.True(t, item.StartedAt.Equal(got.StartedAt))
	assert.Nil(t, got.CompletedAt)
	assert.False(t, got.BranchMerged)
}

func TestWorkItemBranchUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateWorkItem(ctx, sampleWorkItem()))

	dup := sampleWorkItem()
	err := s.CreateWorkItem(ctx, dup)
	require.ErrorIs(t, err, calciferrors.ErrDuplicateName)
}

func TestWorkItemEmptyBranchNotUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleWorkItem()
	first.Branch = ""
	second := sampleWorkItem()
	second.Branch = ""

	require.NoError(t, s.CreateWorkItem(ctx, first))
	require.NoError(t, s.CreateWorkItem(ctx, second))
}

func TestGetWorkItemByBranch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, item))

	got, err := s.GetWorkItemByBranch(ctx, item.Branch)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = s.GetWorkItemByBranch(ctx, "service/new/missing-20260831")
	require.ErrorIs(t, err, calciferrors.ErrWorkItemNotFound)
}

func TestListWorkItemsByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	active := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, active))

	done := sampleWorkItem()
	done.Branch = "service/fix/restart-postgres-20260831"
	done.Status = domain.StatusComplete
	completedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	done.CompletedAt = &completedAt
	require.NoError(t, s.CreateWorkItem(ctx, done))

	all, err := s.ListWorkItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inProgress, err := s.ListWorkItems(ctx, domain.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, active.ID, inProgress[0].ID)
}

func TestUpdateWorkItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, item))

	item.Checklist[0].Done = true
	item.Notes = "backed up to /srv/backups"
	item.Status = domain.StatusComplete
	item.BranchMerged = true
	item.MergeCommitSHA = "abc123"
	completedAt := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	item.CompletedAt = &completedAt
	require.NoError(t, s.UpdateWorkItem(ctx, item))

	got, err := s.GetWorkItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Checklist[0].Done)
	assert.Equal(t, "backed up to /srv/backups", got.Notes)
	assert.Equal(t, domain.StatusComplete, got.Status)
	assert.True(t, got.BranchMerged)
	assert.Equal(t, "abc123", got.MergeCommitSHA)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completedAt.Equal(*got.CompletedAt))
}

func TestUpdateMissingWorkItem(t *testing.T) {
	s := newTestStore(t)

	item := sampleWorkItem()
	item.ID = 9999
	err := s.UpdateWorkItem(context.Background(), item)
	require.ErrorIs(t, err, calciferrors.ErrWorkItemNotFound)
}

func TestDeleteWorkItemCascadesCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, item))

	rec := &domain.CommitRecord{
		WorkItemID:  item.ID,
		SHA:         "deadbeef",
		Message:     "Backup config",
		CommittedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AddCommitRecord(ctx, rec))

	require.NoError(t, s.DeleteWorkItem(ctx, item.ID))

	_, err := s.GetWorkItem(ctx, item.ID)
	require.ErrorIs(t, err, calciferrors.ErrWorkItemNotFound)

	records, err := s.ListCommitRecords(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCommitRecordsDistinct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := sampleWorkItem()
	require.NoError(t, s.CreateWorkItem(ctx, item))

	first := &domain.CommitRecord{
		WorkItemID:  item.ID,
		SHA:         "aaa111",
		Message:     "first change",
		CommittedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
	second := &domain.CommitRecord{
		WorkItemID:  item.ID,
		SHA:         "bbb222",
		Message:     "second change",
		CommittedAt: time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AddCommitRecord(ctx, first))
	require.NoError(t, s.AddCommitRecord(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	records, err := s.ListCommitRecords(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bbb222", records[0].SHA, "newest record first")
	assert.Equal(t, "aaa111", records[1].SHA)
}

func TestEndpointRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	port := 8080
	ep := &domain.Endpoint{
		Name:                 "api",
		Type:                 domain.EndpointTCP,
		Target:               "10.0.0.5",
		Port:                 &port,
		CheckIntervalSeconds: 300,
		Status:               domain.EndpointStatusUnknown,
		Description:          "internal API",
		DocPath:              "docs/endpoint-api.md",
		CreatedAt:            time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		UpdatedAt:            time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateEndpoint(ctx, ep))
	require.Positive(t, ep.ID)

	got, err := s.GetEndpointByName(ctx, "api")
	require.NoError(t, err)
	assert.Equal(t, domain.EndpointTCP, got.Type)
	require.NotNil(t, got.Port)
	assert.Equal(t, 8080, *got.Port)
	assert.Nil(t, got.LastCheck)
	assert.Equal(t, domain.EndpointStatusUnknown, got.Status)

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	got.Status = domain.EndpointStatusUp
	got.LastCheck = &now
	got.LastUp = &now
	got.UpdatedAt = now
	require.NoError(t, s.UpdateEndpoint(ctx, got))

	again, err := s.GetEndpoint(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, again.IsUp())
	require.NotNil(t, again.LastCheck)
	assert.True(t, now.Equal(*again.LastCheck))
}

func TestEndpointNameUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	ep := &domain.Endpoint{Name: "api", Type: domain.EndpointNetwork, Target: "10.0.0.5",
		Status: domain.EndpointStatusUnknown, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateEndpoint(ctx, ep))

	dup := &domain.Endpoint{Name: "api", Type: domain.EndpointNetwork, Target: "10.0.0.6",
		Status: domain.EndpointStatusUnknown, CreatedAt: now, UpdatedAt: now}
	err := s.CreateEndpoint(ctx, dup)
	require.ErrorIs(t, err, calciferrors.ErrDuplicateName)
}

func TestServiceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	svc := &domain.Service{
		Name:      "postgres",
		Type:      domain.ServiceContainer,
		Host:      "db-vm-01",
		Status:    domain.ServiceStatusActive,
		Ports:     "5432",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateService(ctx, svc))

	got, err := s.GetServiceByName(ctx, "postgres")
	require.NoError(t, err)
	assert.Equal(t, svc.ID, got.ID)
	assert.Equal(t, domain.ServiceContainer, got.Type)
	assert.Equal(t, "db-vm-01", got.Host)

	got.Status = domain.ServiceStatusMaintenance
	require.NoError(t, s.UpdateService(ctx, got))

	list, err := s.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ServiceStatusMaintenance, list[0].Status)

	_, err = s.GetService(ctx, 9999)
	require.ErrorIs(t, err, calciferrors.ErrServiceNotFound)
}

func TestCanceledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetWorkItem(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
