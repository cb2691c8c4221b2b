package service

import (
	"context"
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/repository"
	"github.com/protoboard/protoboard-backend/internal/project/selection"
)

const publicIDPrefix = "pb"

// ProjectService orchestrates the mutation surface against storage: load the
// current snapshot, apply a pure mutation, persist the next snapshot, and
// record destructive operations in the audit log.
type ProjectService struct {
	repo  *repository.ProjectRepository
	audit *repository.AuditRepository // nil disables auditing
}

// NewProjectService creates a service without an audit store.
func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// NewProjectServiceWithAudit creates a service that records destructive
// mutations in PostgreSQL.
func NewProjectServiceWithAudit(repo *repository.ProjectRepository, audit *repository.AuditRepository) *ProjectService {
	return &ProjectService{repo: repo, audit: audit}
}

// Create builds a fresh project (with its Home screen) and persists it.
func (s *ProjectService) Create(ctx context.Context, ownerID, name string, temporary bool) (*domain.Project, error) {
	id, err := domain.NewPublicID(publicIDPrefix)
	if err != nil {
		return nil, err
	}
	p := domain.NewProject(id, ownerID, name)
	p.Temporary = temporary
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a project, enforcing ownership. A project owned by somebody else
// is indistinguishable from a missing one.
func (s *ProjectService) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != "" && p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List returns the owner's project summaries without loading full documents.
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]domain.ProjectSummary, error) {
	return s.repo.List(ctx, ownerID)
}

// Delete removes a project entirely and audits the deletion.
func (s *ProjectService) Delete(ctx context.Context, ownerID, id string) error {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.OwnerID, p.ID); err != nil {
		return err
	}
	s.recordAudit(ctx, p.ID, ownerID, "delete_project", "project", []string{p.ID})
	return nil
}

// Duplicate deep-copies a project under a fresh public id.
func (s *ProjectService) Duplicate(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	src, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	freshID, err := domain.NewPublicID(publicIDPrefix)
	if err != nil {
		return nil, err
	}
	dup := src.Clone()
	dup.ID = freshID
	dup.Name = fmt.Sprintf("Copy of %s", src.Name)
	if err := s.repo.Save(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// Apply runs a pure mutation against the stored snapshot and persists the
// result. When the mutation absorbs a write (locked entity) the snapshot
// pointer comes back unchanged and nothing is re-persisted.
func (s *ProjectService) Apply(ctx context.Context, ownerID, projectID string, fn func(*domain.Project) (*domain.Project, error)) (*domain.Project, error) {
	p, err := s.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	next, err := fn(p)
	if err != nil {
		return nil, err
	}
	if next == p {
		return p, nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DeleteEntities executes a (possibly bulk) delete of elements or screens.
// Bulk deletes require the confirmation token issued by the plan phase; a
// delete without it is rejected, never partially applied.
func (s *ProjectService) DeleteEntities(ctx context.Context, ownerID, projectID, kind, screenID string, ids []string, confirmToken string, fn func(*domain.Project) (*domain.Project, error)) (*domain.Project, error) {
	if err := selection.VerifyConfirm(confirmToken, kind, ids); err != nil {
		return nil, err
	}
	next, err := s.Apply(ctx, ownerID, projectID, fn)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, projectID, ownerID, "delete", kind, ids)
	return next, nil
}

// PlanDelete builds the confirm-intent for a bulk delete without changing
// anything.
func (s *ProjectService) PlanDelete(ctx context.Context, ownerID, projectID, kind, screenID string, ids []string) (selection.DeleteIntent, error) {
	p, err := s.Get(ctx, ownerID, projectID)
	if err != nil {
		return selection.DeleteIntent{}, err
	}
	return selection.PlanBulkDelete(p, kind, screenID, ids)
}

// AuditLog lists the recorded mutations of a project, newest first.
func (s *ProjectService) AuditLog(ctx context.Context, ownerID, projectID string, limit int) ([]repository.AuditEntry, error) {
	if _, err := s.Get(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	if s.audit == nil {
		return []repository.AuditEntry{}, nil
	}
	return s.audit.ListByProject(ctx, projectID, limit)
}

// recordAudit is best effort; a failing audit store never fails the
// mutation that already committed.
func (s *ProjectService) recordAudit(ctx context.Context, projectID, actor, op, kind string, ids []string) {
	if s.audit == nil {
		return
	}
	entry := repository.AuditEntry{
		ProjectID:  projectID,
		Actor:      actor,
		Op:         op,
		EntityKind: kind,
		EntityIDs:  ids,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		NewLogger(ctx).LogError("record_audit", err)
	}
}
