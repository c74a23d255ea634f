// Package store persists work items, commit records, endpoints, and the
// service catalog. The only implementation is SQLite-backed; the interface
// exists so the orchestration layer can be tested against fakes.
package store

import (
	"context"

	"github.com/mrz1836/calcifer/internal/domain"
)

// Store is the persistence boundary for all Calcifer records.
//
// Lookup methods return ErrWorkItemNotFound, ErrEndpointNotFound, or
// ErrServiceNotFound when no row matches. Creating a record whose unique
// column (work item branch, endpoint name, service name) already exists
// returns ErrDuplicateName.
type Store interface {
	// CreateWorkItem inserts a work item and assigns its ID.
	CreateWorkItem(ctx context.Context, item *domain.WorkItem) error

	// GetWorkItem fetches one work item by ID.
	GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error)

	// GetWorkItemByBranch fetches the work item bound to a git branch.
	GetWorkItemByBranch(ctx context.Context, branch string) (*domain.WorkItem, error)

	// ListWorkItems returns work items newest-first. An empty status lists
	// all items; otherwise only items in that state.
	ListWorkItems(ctx context.Context, status domain.Status) ([]*domain.WorkItem, error)

	// UpdateWorkItem persists all mutable fields of an existing work item.
	UpdateWorkItem(ctx context.Context, item *domain.WorkItem) error

	// DeleteWorkItem removes a work item. Its commit records cascade.
	DeleteWorkItem(ctx context.Context, id int64) error

	// AddCommitRecord inserts a commit record and assigns its ID.
	AddCommitRecord(ctx context.Context, record *domain.CommitRecord) error

	// ListCommitRecords returns a work item's commit records newest-first.
	ListCommitRecords(ctx context.Context, workItemID int64) ([]*domain.CommitRecord, error)

	// CreateEndpoint inserts an endpoint and assigns its ID.
	CreateEndpoint(ctx context.Context, ep *domain.Endpoint) error

	// GetEndpoint fetches one endpoint by ID.
	GetEndpoint(ctx context.Context, id int64) (*domain.Endpoint, error)

	// GetEndpointByName fetches one endpoint by its unique name.
	GetEndpointByName(ctx context.Context, name string) (*domain.Endpoint, error)

	// ListEndpoints returns all endpoints ordered by name.
	ListEndpoints(ctx context.Context) ([]*domain.Endpoint, error)

	// UpdateEndpoint persists all mutable fields of an existing endpoint.
	UpdateEndpoint(ctx context.Context, ep *domain.Endpoint) error

	// DeleteEndpoint removes an endpoint.
	DeleteEndpoint(ctx context.Context, id int64) error

	// CreateService inserts a service catalog entry and assigns its ID.
	CreateService(ctx context.Context, svc *domain.Service) error

	// GetService fetches one service by ID.
	GetService(ctx context.Context, id int64) (*domain.Service, error)

	// GetServiceByName fetches one service by its unique name.
	GetServiceByName(ctx context.Context, name string) (*domain.Service, error)

	// ListServices returns all catalog entries ordered by name.
	ListServices(ctx context.Context) ([]*domain.Service, error)

	// UpdateService persists all mutable fields of an existing service.
	UpdateService(ctx context.Context, svc *domain.Service) error

	// Close releases the underlying database handle.
	Close() error
}
