package bootstrap

import (
	httpapi "github.com/devprojects-hub/daily-projects-backend/internal/api/http"
	"github.com/devprojects-hub/daily-projects-backend/internal/api/http/middleware"
	projectshttp "github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/http"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/ratelimit"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Projects    *service.ProjectService
	Limiter     *ratelimit.Limiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	if len(dep.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = dep.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-API-Key", "X-Request-Id")
		r.Use(cors.New(corsCfg))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Projects)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	projectsGroup := api.Group("/projects")
	projectsGroup.Use(middleware.RateLimitMiddleware(dep.Limiter))

	projectsHandler := projectshttp.New(dep.Projects)
	projectsHandler.Register(projectsGroup)

	return r
}
