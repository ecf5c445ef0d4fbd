package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/schedule-intake-api/internal/handler"
	"github.com/noah-isme/schedule-intake-api/internal/middleware"
	"github.com/noah-isme/schedule-intake-api/internal/service"
	"github.com/noah-isme/schedule-intake-api/pkg/config"
	"github.com/noah-isme/schedule-intake-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/schedule-intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/schedule-intake-api/pkg/middleware/requestid"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *service.MetricsService
	Submission *handler.SubmissionHandler
	Probes     *handler.MetricsHandler
	Throttle   gin.HandlerFunc
}

// New builds the gin engine with middleware and routes registered.
func New(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", d.Probes.Health)
	r.GET("/ready", d.Probes.Ready)
	r.GET("/metrics", d.Probes.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	submit := []gin.HandlerFunc{middleware.BodyLimit(cfg.MaxBodyBytes)}
	if d.Throttle != nil {
		submit = append(submit, d.Throttle)
	}
	submit = append(submit, d.Submission.Submit)
	r.POST(cfg.SubmitPath, submit...)

	return r
}
