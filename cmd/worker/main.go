// Command worker runs the maintenance pass once and exits: reconcile the
// project summary index and prune stale temporary projects. The API server
// schedules the same pass nightly; this binary exists for manual runs and
// external schedulers.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/protoboard/protoboard-backend/config"
	"github.com/protoboard/protoboard-backend/internal/bootstrap"
	"github.com/protoboard/protoboard-backend/internal/project/repository"
	"github.com/protoboard/protoboard-backend/internal/project/service"
)

func main() {
	reconcile := flag.Bool("reconcile", true, "reconcile the summary index")
	prune := flag.Bool("prune", true, "prune stale temporary projects")
	retentionDays := flag.Int("retention-days", 7, "temporary project retention in days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer store.Close()

	repo := repository.NewProjectRepository(store)
	svc := service.NewProjectService(repo)

	if cfg.Database.DSN != "" {
		db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Printf("audit store unavailable, auditing disabled: %v", err)
		} else {
			defer db.Close()
			audit := repository.NewAuditRepository(db)
			if err := audit.EnsureSchema(ctx); err != nil {
				log.Fatalf("audit schema: %v", err)
			}
			svc = service.NewProjectServiceWithAudit(repo, audit)
		}
	}

	if *reconcile {
		rebuilt, dropped, err := svc.ReconcileIndex(ctx)
		if err != nil {
			log.Fatalf("reconcile: %v", err)
		}
		log.Printf("reconcile complete: rebuilt=%d dropped=%d", rebuilt, dropped)
	}

	if *prune {
		pruned, err := svc.PruneTemporary(ctx, time.Duration(*retentionDays)*24*time.Hour)
		if err != nil {
			log.Fatalf("prune: %v", err)
		}
		log.Printf("prune complete: pruned=%d", pruned)
	}
}
