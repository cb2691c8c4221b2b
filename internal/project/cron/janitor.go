package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/protoboard/protoboard-backend/internal/project/service"
)

// Janitor runs nightly maintenance: reconcile the summary index against the
// stored documents and prune stale temporary projects.
type Janitor struct {
	svc       *service.ProjectService
	retention time.Duration
	cron      *cron.Cron
}

func NewJanitor(svc *service.ProjectService, retention time.Duration) *Janitor {
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	return &Janitor{svc: svc, retention: retention}
}

// Start schedules the nightly run.
func (j *Janitor) Start() {
	c := cron.New(cron.WithSeconds())

	// 3:00 AM
	_, err := c.AddFunc("0 0 3 * * *", j.RunOnce)
	if err != nil {
		log.Printf("Failed to create janitor cron job: %v", err)
		return
	}

	log.Println("Janitor scheduler started (running nightly at 3:00AM)")
	c.Start()
	j.cron = c
}

// Stop halts the scheduler.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce performs one maintenance pass.
func (j *Janitor) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rebuilt, dropped, err := j.svc.ReconcileIndex(ctx)
	if err != nil {
		log.Printf("Janitor reconcile failed: %v", err)
		return
	}
	pruned, err := j.svc.PruneTemporary(ctx, j.retention)
	if err != nil {
		log.Printf("Janitor prune failed: %v", err)
		return
	}
	log.Printf("Janitor pass complete: rebuilt=%d dropped=%d pruned=%d at %s",
		rebuilt, dropped, pruned, time.Now().Format(time.RFC1123))
}
