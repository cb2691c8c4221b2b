package main

import (
	"context"
	"log"
	"time"

	"github.com/protoboard/protoboard-backend/config"
	"github.com/protoboard/protoboard-backend/internal/auth"
	"github.com/protoboard/protoboard-backend/internal/bootstrap"
	cronjob "github.com/protoboard/protoboard-backend/internal/project/cron"
	"github.com/protoboard/protoboard-backend/internal/project/repository"
)

const serviceName = "protoboard-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	store, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer store.Close()

	deps := bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Store:       store,
	}

	if cfg.Database.DSN != "" {
		db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Printf("audit store unavailable, auditing disabled: %v", err)
		} else {
			defer db.Close()
			if err := repository.NewAuditRepository(db).EnsureSchema(ctx); err != nil {
				log.Fatalf("audit schema: %v", err)
			}
			deps.DB = db
		}
	}

	if cfg.Firebase.CredentialsPath != "" {
		authClient, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		deps.AuthClient = authClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, auth disabled")
	}

	r, svc := bootstrap.BuildRouter(deps)

	janitor := cronjob.NewJanitor(svc, time.Duration(cfg.App.RetentionDays)*24*time.Hour)
	janitor.Start()
	defer janitor.Stop()

	log.Printf("%s %s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
