package service

import (
	"context"
	"log"
	"time"
)

// ReconcileIndex repairs the summary index against the stored documents:
// summaries missing for a document are rebuilt, summaries whose document is
// gone are dropped. Returns (rebuilt, dropped).
func (s *ProjectService) ReconcileIndex(ctx context.Context) (int, int, error) {
	docIDs, err := s.repo.AllDocumentIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	rebuilt := 0
	have := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		have[id] = true
		if _, err := s.repo.GetSummary(ctx, id); err == nil {
			continue
		}
		p, err := s.repo.Get(ctx, id)
		if err != nil {
			log.Printf("[warn] operation=reconcile_index project=%s error=%v", id, err)
			continue
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return rebuilt, 0, err
		}
		rebuilt++
	}

	summaryIDs, err := s.repo.AllSummaryIDs(ctx)
	if err != nil {
		return rebuilt, 0, err
	}
	dropped := 0
	for _, id := range summaryIDs {
		if have[id] {
			continue
		}
		if err := s.repo.DeleteSummary(ctx, id); err != nil {
			return rebuilt, dropped, err
		}
		dropped++
	}
	return rebuilt, dropped, nil
}

// PruneTemporary deletes temporary projects that have not been touched for
// maxAge. Each removal goes through the audited delete path.
func (s *ProjectService) PruneTemporary(ctx context.Context, maxAge time.Duration) (int, error) {
	ids, err := s.repo.AllDocumentIDs(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	pruned := 0
	for _, id := range ids {
		p, err := s.repo.Get(ctx, id)
		if err != nil {
			continue
		}
		if !p.Temporary || p.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.repo.Delete(ctx, p.OwnerID, p.ID); err != nil {
			return pruned, err
		}
		s.recordAudit(ctx, p.ID, "janitor", "prune_temporary", "project", []string{p.ID})
		pruned++
	}
	return pruned, nil
}
