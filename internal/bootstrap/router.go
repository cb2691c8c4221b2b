package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/protoboard/protoboard-backend/internal/api/http"
	"github.com/protoboard/protoboard-backend/internal/api/http/middleware"
	"github.com/protoboard/protoboard-backend/internal/auth"
	projecthttp "github.com/protoboard/protoboard-backend/internal/project/http"
	"github.com/protoboard/protoboard-backend/internal/project/repository"
	"github.com/protoboard/protoboard-backend/internal/project/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Store       *redis.Client
	DB          *pgxpool.Pool // nil disables the audit log
	AuthClient  *fbauth.Client
}

func BuildRouter(dep RouterDeps) (*gin.Engine, *service.ProjectService) {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.DB)
	healthHandler.RegisterRoutes(r)

	repo := repository.NewProjectRepository(dep.Store)
	var svc *service.ProjectService
	if dep.DB != nil {
		svc = service.NewProjectServiceWithAudit(repo, repository.NewAuditRepository(dep.DB))
	} else {
		svc = service.NewProjectService(repo)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rate.Limit(50), 100))
	api.Use(auth.WithUser(dep.AuthClient))

	projecthttp.Register(api, svc)

	return r, svc
}
