package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry is one recorded mutation. Deletions in particular are always
// explicit, auditable mutations; nothing is garbage-collected implicitly.
type AuditEntry struct {
	ID         int64     `json:"id"`
	ProjectID  string    `json:"project_id"`
	Actor      string    `json:"actor"`
	Op         string    `json:"op"`
	EntityKind string    `json:"entity_kind"`
	EntityIDs  []string  `json:"entity_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditRepository appends mutation records to PostgreSQL.
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the audit table when it does not exist yet.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS mutation_audit (
	id          BIGSERIAL PRIMARY KEY,
	project_id  TEXT NOT NULL,
	actor       TEXT NOT NULL DEFAULT '',
	op          TEXT NOT NULL,
	entity_kind TEXT NOT NULL DEFAULT '',
	entity_ids  TEXT[] NOT NULL DEFAULT '{}',
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS mutation_audit_project_idx ON mutation_audit (project_id, occurred_at DESC);
`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Record appends one audit entry.
func (r *AuditRepository) Record(ctx context.Context, e AuditEntry) error {
	const q = `
INSERT INTO mutation_audit (project_id, actor, op, entity_kind, entity_ids)
VALUES ($1, $2, $3, $4, $5);
`
	if _, err := r.db.Exec(ctx, q, e.ProjectID, e.Actor, e.Op, e.EntityKind, e.EntityIDs); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// ListByProject returns the most recent entries for a project, newest first.
func (r *AuditRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `
SELECT id, project_id, actor, op, entity_kind, entity_ids, occurred_at
FROM mutation_audit
WHERE project_id = $1
ORDER BY occurred_at DESC
LIMIT $2;
`
	rows, err := r.db.Query(ctx, q, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]AuditEntry, 0, limit)
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Actor, &e.Op, &e.EntityKind, &e.EntityIDs, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
