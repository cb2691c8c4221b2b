package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

const (
	docKeyPrefix     = "pb:project:" // Full project document: pb:project:{id}
	summaryKeyPrefix = "pb:summary:" // Listing summary: pb:summary:{id}
	ownerSetPrefix   = "pb:user:"    // Set of project ids per owner: pb:user:{owner_id}:projects
)

// ProjectRepository persists project documents in Redis. The full document
// and its listing summary live under separate keys so lists never load full
// documents; multi-key writes go through a pipeline.
type ProjectRepository struct {
	client *redis.Client
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Save stores the document, refreshes its summary and records ownership in
// one pipeline.
func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	summary, err := json.Marshal(p.Summary())
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.docKey(p.ID), doc, 0)
	pipe.Set(ctx, r.summaryKey(p.ID), summary, 0)
	if p.OwnerID != "" {
		pipe.SAdd(ctx, r.ownerSetKey(p.OwnerID), p.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Get loads a full project document.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.docKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	return &p, nil
}

// GetSummary loads just the listing summary of a project.
func (r *ProjectRepository) GetSummary(ctx context.Context, id string) (*domain.ProjectSummary, error) {
	data, err := r.client.Get(ctx, r.summaryKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	var s domain.ProjectSummary
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &s, nil
}

// List returns the summaries of every project owned by ownerID. Summaries
// missing from the index (for example after a partial delete) are skipped;
// the janitor reconciles them.
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]domain.ProjectSummary, error) {
	ids, err := r.client.SMembers(ctx, r.ownerSetKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]domain.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetSummary(ctx, id)
		if err == domain.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// Delete removes the document, its summary and the ownership entry.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.docKey(id))
	pipe.Del(ctx, r.summaryKey(id))
	if ownerID != "" {
		pipe.SRem(ctx, r.ownerSetKey(ownerID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// AllDocumentIDs scans the document keyspace and returns every stored
// project id. Used by the janitor to reconcile the summary index.
func (r *ProjectRepository) AllDocumentIDs(ctx context.Context) ([]string, error) {
	var out []string
	iter := r.client.Scan(ctx, 0, docKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val()[len(docKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	return out, nil
}

// AllSummaryIDs scans the summary keyspace, for orphan detection.
func (r *ProjectRepository) AllSummaryIDs(ctx context.Context) ([]string, error) {
	var out []string
	iter := r.client.Scan(ctx, 0, summaryKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val()[len(summaryKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan summaries: %w", err)
	}
	return out, nil
}

// DeleteSummary removes an orphaned summary entry.
func (r *ProjectRepository) DeleteSummary(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.summaryKey(id)).Err()
}

func (r *ProjectRepository) docKey(id string) string {
	return docKeyPrefix + id
}

func (r *ProjectRepository) summaryKey(id string) string {
	return summaryKeyPrefix + id
}

func (r *ProjectRepository) ownerSetKey(ownerID string) string {
	return fmt.Sprintf("%s%s:projects", ownerSetPrefix, ownerID)
}
