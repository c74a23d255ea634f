package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/mrz1836/calcifer/internal/ctxutil"
	"github.com/mrz1836/calcifer/internal/domain"
	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// timeLayout is the canonical on-disk timestamp format.
const timeLayout = time.RFC3339Nano

// schema is applied on every open. CREATE TABLE IF NOT EXISTS keeps existing
// databases intact while healing missing tables.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS services (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		service_type TEXT NOT NULL,
		host TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		ports TEXT NOT NULL DEFAULT '',
		config_path TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS work_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		action_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'in_progress',
		description TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		git_branch TEXT UNIQUE,
		checklist TEXT NOT NULL DEFAULT '[]',
		branch_merged INTEGER NOT NULL DEFAULT 0,
		merge_commit_sha TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		completed_at TEXT,
		service_id INTEGER REFERENCES services(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS commits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		work_item_id INTEGER NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		commit_hash TEXT NOT NULL,
		commit_message TEXT NOT NULL DEFAULT '',
		committed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS endpoints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		endpoint_type TEXT NOT NULL,
		target TEXT NOT NULL,
		port INTEGER,
		check_interval_seconds INTEGER NOT NULL DEFAULT 300,
		status TEXT NOT NULL DEFAULT 'unknown',
		last_check TEXT,
		last_up TEXT,
		last_down TEXT,
		consecutive_failures INTEGER NOT NULL DEFAULT 0,
		last_error TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		doc_path TEXT NOT NULL DEFAULT '',
		work_item_id INTEGER REFERENCES work_items(id) ON DELETE SET NULL,
		service_id INTEGER REFERENCES services(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_status ON work_items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_commits_work_item ON commits(work_item_id)`,
}

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created when missing.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty: %w", calciferrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers unblocked during writes; busy_timeout covers the
	// brief lock contention that remains.
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err = db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateWorkItem inserts a work item and assigns its ID.
func (s *SQLiteStore) CreateWorkItem(ctx context.Context, item *domain.WorkItem) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	checklist, err := json.Marshal(item.Checklist)
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO work_items
			(title, category, action_type, status, description, notes, git_branch,
			 checklist, branch_merged, merge_commit_sha, started_at, completed_at, service_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, string(item.Category), string(item.ActionType), string(item.Status),
		item.Description, item.Notes, nullableString(item.Branch),
		string(checklist), item.BranchMerged, item.MergeCommitSHA,
		item.StartedAt.Format(timeLayout), formatTimePtr(item.CompletedAt), item.ServiceID)
	if err != nil {
		return wrapStoreErr("insert work item", err)
	}

	item.ID, err = result.LastInsertId()
	if err != nil {
		return wrapStoreErr("insert work item", err)
	}
	return nil
}

const workItemColumns = `id, title, category, action_type, status, description, notes,
	git_branch, checklist, branch_merged, merge_commit_sha, started_at, completed_at, service_id`

// GetWorkItem fetches one work item by ID.
func (s *SQLiteStore) GetWorkItem(ctx context.Context, id int64) (*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+workItemColumns+` FROM work_items WHERE id = ?`, id)
	item, err := scanWorkItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work item %d: %w", id, calciferrors.ErrWorkItemNotFound)
	}
	return item, err
}

// GetWorkItemByBranch fetches the work item bound to a git branch.
func (s *SQLiteStore) GetWorkItemByBranch(ctx context.Context, branch string) (*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+workItemColumns+` FROM work_items WHERE git_branch = ?`, branch)
	item, err := scanWorkItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("branch %q: %w", branch, calciferrors.ErrWorkItemNotFound)
	}
	return item, err
}

// ListWorkItems returns work items newest-first, optionally filtered by status.
func (s *SQLiteStore) ListWorkItems(ctx context.Context, status domain.Status) ([]*domain.WorkItem, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + workItemColumns + ` FROM work_items`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list work items", err)
	}
	defer func() { _ = rows.Close() }()

	items := []*domain.WorkItem{}
	for rows.Next() {
		item, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("list work items", err)
	}
	return items, nil
}

// UpdateWorkItem persists all mutable fields of an existing work item.
func (s *SQLiteStore) UpdateWorkItem(ctx context.Context, item *domain.WorkItem) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	checklist, err := json.Marshal(item.Checklist)
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE work_items SET
			title = ?, category = ?, action_type = ?, status = ?, description = ?,
			notes = ?, git_branch = ?, checklist = ?, branch_merged = ?,
			merge_commit_sha = ?, completed_at = ?, service_id = ?
		 WHERE id = ?`,
		item.Title, string(item.Category), string(item.ActionType), string(item.Status),
		item.Description, item.Notes, nullableString(item.Branch), string(checklist),
		item.BranchMerged, item.MergeCommitSHA, formatTimePtr(item.CompletedAt),
		item.ServiceID, item.ID)
	if err != nil {
		return wrapStoreErr("update work item", err)
	}

	return requireRow(result, fmt.Sprintf("work item %d", item.ID), calciferrors.ErrWorkItemNotFound)
}

// DeleteWorkItem removes a work item; commit records cascade via foreign key.
func (s *SQLiteStore) DeleteWorkItem(ctx context.Context, id int64) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return wrapStoreErr("delete work item", err)
	}
	return requireRow(result, fmt.Sprintf("work item %d", id), calciferrors.ErrWorkItemNotFound)
}

// AddCommitRecord inserts a commit record and assigns its ID.
func (s *SQLiteStore) AddCommitRecord(ctx context.Context, record *domain.CommitRecord) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO commits (work_item_id, commit_hash, commit_message, committed_at)
		 VALUES (?, ?, ?, ?)`,
		record.WorkItemID, record.SHA, record.Message, record.CommittedAt.Format(timeLayout))
	if err != nil {
		return wrapStoreErr("insert commit record", err)
	}

	record.ID, err = result.LastInsertId()
	if err != nil {
		return wrapStoreErr("insert commit record", err)
	}
	return nil
}

// ListCommitRecords returns a work item's commit records newest-first.
func (s *SQLiteStore) ListCommitRecords(ctx context.Context, workItemID int64) ([]*domain.CommitRecord, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, work_item_id, commit_hash, commit_message, committed_at
		 FROM commits WHERE work_item_id = ? ORDER BY committed_at DESC, id DESC`, workItemID)
	if err != nil {
		return nil, wrapStoreErr("list commit records", err)
	}
	defer func() { _ = rows.Close() }()

	records := []*domain.CommitRecord{}
	for rows.Next() {
		var rec domain.CommitRecord
		var committedAt string
		if err = rows.Scan(&rec.ID, &rec.WorkItemID, &rec.SHA, &rec.Message, &committedAt); err != nil {
			return nil, wrapStoreErr("scan commit record", err)
		}
		if rec.CommittedAt, err = time.Parse(timeLayout, committedAt); err != nil {
			return nil, wrapStoreErr("parse commit timestamp", err)
		}
		records = append(records, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("list commit records", err)
	}
	return records, nil
}

// CreateEndpoint inserts an endpoint and assigns its ID.
func (s *SQLiteStore) CreateEndpoint(ctx context.Context, ep *domain.Endpoint) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO endpoints
			(name, endpoint_type, target, port, check_interval_seconds, status,
			 last_check, last_up, last_down, consecutive_failures, last_error,
			 description, doc_path, work_item_id, service_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.Name, string(ep.Type), ep.Target, ep.Port, ep.CheckIntervalSeconds,
		string(ep.Status), formatTimePtr(ep.LastCheck), formatTimePtr(ep.LastUp),
		formatTimePtr(ep.LastDown), ep.ConsecutiveFailures, ep.LastError,
		ep.Description, ep.DocPath, ep.WorkItemID, ep.ServiceID,
		ep.CreatedAt.Format(timeLayout), ep.UpdatedAt.Format(timeLayout))
	if err != nil {
		return wrapStoreErr("insert endpoint", err)
	}

	ep.ID, err = result.LastInsertId()
	if err != nil {
		return wrapStoreErr("insert endpoint", err)
	}
	return nil
}

const endpointColumns = `id, name, endpoint_type, target, port, check_interval_seconds,
	status, last_check, last_up, last_down, consecutive_failures, last_error,
	description, doc_path, work_item_id, service_id, created_at, updated_at`

// GetEndpoint fetches one endpoint by ID.
func (s *SQLiteStore) GetEndpoint(ctx context.Context, id int64) (*domain.Endpoint, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+endpointColumns+` FROM endpoints WHERE id = ?`, id)
	ep, err := scanEndpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("endpoint %d: %w", id, calciferrors.ErrEndpointNotFound)
	}
	return ep, err
}

// GetEndpointByName fetches one endpoint by its unique name.
func (s *SQLiteStore) GetEndpointByName(ctx context.Context, name string) (*domain.Endpoint, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+endpointColumns+` FROM endpoints WHERE name = ?`, name)
	ep, err := scanEndpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("endpoint %q: %w", name, calciferrors.ErrEndpointNotFound)
	}
	return ep, err
}

// ListEndpoints returns all endpoints ordered by name.
func (s *SQLiteStore) ListEndpoints(ctx context.Context) ([]*domain.Endpoint, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+endpointColumns+` FROM endpoints ORDER BY name`)
	if err != nil {
		return nil, wrapStoreErr("list endpoints", err)
	}
	defer func() { _ = rows.Close() }()

	endpoints := []*domain.Endpoint{}
	for rows.Next() {
		ep, err := scanEndpoint(rows)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("list endpoints", err)
	}
	return endpoints, nil
}

// UpdateEndpoint persists all mutable fields of an existing endpoint.
func (s *SQLiteStore) UpdateEndpoint(ctx context.Context, ep *domain.Endpoint) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE endpoints SET
			name = ?, endpoint_type = ?, target = ?, port = ?, check_interval_seconds = ?,
			status = ?, last_check = ?, last_up = ?, last_down = ?, consecutive_failures = ?,
			last_error = ?, description = ?, doc_path = ?, work_item_id = ?, service_id = ?,
			updated_at = ?
		 WHERE id = ?`,
		ep.Name, string(ep.Type), ep.Target, ep.Port, ep.CheckIntervalSeconds,
		string(ep.Status), formatTimePtr(ep.LastCheck), formatTimePtr(ep.LastUp),
		formatTimePtr(ep.LastDown), ep.ConsecutiveFailures, ep.LastError,
		ep.Description, ep.DocPath, ep.WorkItemID, ep.ServiceID,
		ep.UpdatedAt.Format(timeLayout), ep.ID)
	if err != nil {
		return wrapStoreErr("update endpoint", err)
	}
	return requireRow(result, fmt.Sprintf("endpoint %d", ep.ID), calciferrors.ErrEndpointNotFound)
}

// DeleteEndpoint removes an endpoint.
func (s *SQLiteStore) DeleteEndpoint(ctx context.Context, id int64) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM endpoints WHERE id = ?`, id)
	if err != nil {
		return wrapStoreErr("delete endpoint", err)
	}
	return requireRow(result, fmt.Sprintf("endpoint %d", id), calciferrors.ErrEndpointNotFound)
}

// CreateService inserts a service catalog entry and assigns its ID.
func (s *SQLiteStore) CreateService(ctx context.Context, svc *domain.Service) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO services
			(name, service_type, host, url, description, status, ports, config_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		svc.Name, string(svc.Type), svc.Host, svc.URL, svc.Description,
		string(svc.Status), svc.Ports, svc.ConfigPath,
		svc.CreatedAt.Format(timeLayout), svc.UpdatedAt.Format(timeLayout))
	if err != nil {
		return wrapStoreErr("insert service", err)
	}

	svc.ID, err = result.LastInsertId()
	if err != nil {
		return wrapStoreErr("insert service", err)
	}
	return nil
}

const serviceColumns = `id, name, service_type, host, url, description, status, ports, config_path, created_at, updated_at`

// GetService fetches one service by ID.
func (s *SQLiteStore) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %d: %w", id, calciferrors.ErrServiceNotFound)
	}
	return svc, err
}

// GetServiceByName fetches one service by its unique name.
func (s *SQLiteStore) GetServiceByName(ctx context.Context, name string) (*domain.Service, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE name = ?`, name)
	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %q: %w", name, calciferrors.ErrServiceNotFound)
	}
	return svc, err
}

// ListServices returns all catalog entries ordered by name.
func (s *SQLiteStore) ListServices(ctx context.Context) ([]*domain.Service, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name`)
	if err != nil {
		return nil, wrapStoreErr("list services", err)
	}
	defer func() { _ = rows.Close() }()

	services := []*domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("list services", err)
	}
	return services, nil
}

// UpdateService persists all mutable fields of an existing service.
func (s *SQLiteStore) UpdateService(ctx context.Context, svc *domain.Service) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE services SET
			name = ?, service_type = ?, host = ?, url = ?, description = ?,
			status = ?, ports = ?, config_path = ?, updated_at = ?
		 WHERE id = ?`,
		svc.Name, string(svc.Type), svc.Host, svc.URL, svc.Description,
		string(svc.Status), svc.Ports, svc.ConfigPath,
		svc.UpdatedAt.Format(timeLayout), svc.ID)
	if err != nil {
		return wrapStoreErr("update service", err)
	}
	return requireRow(result, fmt.Sprintf("service %d", svc.ID), calciferrors.ErrServiceNotFound)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkItem(sc scanner) (*domain.WorkItem, error) {
	var item domain.WorkItem
	var branch sql.NullString
	var checklist, startedAt string
	var completedAt sql.NullString
	var serviceID sql.NullInt64

	err := sc.Scan(&item.ID, &item.Title, &item.Category, &item.ActionType,
		&item.Status, &item.Description, &item.Notes, &branch, &checklist,
		&item.BranchMerged, &item.MergeCommitSHA, &startedAt, &completedAt, &serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrapStoreErr("scan work item", err)
	}

	item.Branch = branch.String
	if err = json.Unmarshal([]byte(checklist), &item.Checklist); err != nil {
		return nil, wrapStoreErr("decode checklist", err)
	}
	if item.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, wrapStoreErr("parse started_at", err)
	}
	if item.CompletedAt, err = parseTimePtr(completedAt); err != nil {
		return nil, wrapStoreErr("parse completed_at", err)
	}
	if serviceID.Valid {
		item.ServiceID = &serviceID.Int64
	}
	return &item, nil
}

func scanEndpoint(sc scanner) (*domain.Endpoint, error) {
	var ep domain.Endpoint
	var port, workItemID, serviceID sql.NullInt64
	var lastCheck, lastUp, lastDown sql.NullString
	var createdAt, updatedAt string

	err := sc.Scan(&ep.ID, &ep.Name, &ep.Type, &ep.Target, &port,
		&ep.CheckIntervalSeconds, &ep.Status, &lastCheck, &lastUp, &lastDown,
		&ep.ConsecutiveFailures, &ep.LastError, &ep.Description, &ep.DocPath,
		&workItemID, &serviceID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrapStoreErr("scan endpoint", err)
	}

	if port.Valid {
		p := int(port.Int64)
		ep.Port = &p
	}
	if workItemID.Valid {
		ep.WorkItemID = &workItemID.Int64
	}
	if serviceID.Valid {
		ep.ServiceID = &serviceID.Int64
	}
	if ep.LastCheck, err = parseTimePtr(lastCheck); err != nil {
		return nil, wrapStoreErr("parse last_check", err)
	}
	if ep.LastUp, err = parseTimePtr(lastUp); err != nil {
		return nil, wrapStoreErr("parse last_up", err)
	}
	if ep.LastDown, err = parseTimePtr(lastDown); err != nil {
		return nil, wrapStoreErr("parse last_down", err)
	}
	if ep.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, wrapStoreErr("parse created_at", err)
	}
	if ep.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, wrapStoreErr("parse updated_at", err)
	}
	return &ep, nil
}

func scanService(sc scanner) (*domain.Service, error) {
	var svc domain.Service
	var createdAt, updatedAt string

	err := sc.Scan(&svc.ID, &svc.Name, &svc.Type, &svc.Host, &svc.URL,
		&svc.Description, &svc.Status, &svc.Ports, &svc.ConfigPath, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrapStoreErr("scan service", err)
	}

	if svc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, wrapStoreErr("parse created_at", err)
	}
	if svc.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, wrapStoreErr("parse updated_at", err)
	}
	return &svc, nil
}

// wrapStoreErr maps sqlite errors to sentinels. Unique constraint violations
// become ErrDuplicateName; everything else wraps ErrStoreOperation.
func wrapStoreErr(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", op, calciferrors.ErrDuplicateName)
	}
	return fmt.Errorf("%s: %v: %w", op, err, calciferrors.ErrStoreOperation)
}

// requireRow converts a zero-row update/delete into the given sentinel.
func requireRow(result sql.Result, subject string, sentinel error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return wrapStoreErr("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", subject, sentinel)
	}
	return nil
}

// nullableString stores "" as NULL so UNIQUE columns allow many empty values.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
