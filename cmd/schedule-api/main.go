package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/schedule-intake-api/api/swagger"
	"github.com/noah-isme/schedule-intake-api/internal/handler"
	"github.com/noah-isme/schedule-intake-api/internal/middleware"
	"github.com/noah-isme/schedule-intake-api/internal/repository"
	"github.com/noah-isme/schedule-intake-api/internal/router"
	"github.com/noah-isme/schedule-intake-api/internal/service"
	"github.com/noah-isme/schedule-intake-api/pkg/cache"
	"github.com/noah-isme/schedule-intake-api/pkg/config"
	"github.com/noah-isme/schedule-intake-api/pkg/database"
	"github.com/noah-isme/schedule-intake-api/pkg/logger"
)

// @title Student Schedule Intake API
// @version 1.0.0
// @description Accepts weekly availability and class schedules submitted by students.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		logr.Error("database setup failed", zap.String("path", cfg.Database.Path), zap.Error(err))
		_ = logr.Sync()
		stop()
		os.Exit(1)
	}
	defer db.Close()
	logr.Info("database schema ready", zap.String("path", cfg.Database.Path))

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, submission throttle disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics := service.NewMetricsService()
	submissions := repository.NewSubmissionRepository(db)
	submissionSvc := service.NewSubmissionService(submissions, validator.New(), metrics, logr.Named("submission"))

	engine := router.New(router.Deps{
		Config:     cfg,
		Logger:     logr,
		Metrics:    metrics,
		Submission: handler.NewSubmissionHandler(submissionSvc, metrics, logr.Named("submission")),
		Probes:     handler.NewMetricsHandler(metrics, submissions),
		Throttle: middleware.SubmissionThrottle(
			repository.NewThrottleRepository(redisClient),
			cfg.Throttle.Limit,
			cfg.Throttle.Window,
			logr.Named("throttle"),
		),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "submit_path", cfg.SubmitPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	logr.Info("server stopped")
}

// openDatabase opens the SQLite file and creates the schema, closing the handle again
// when the schema step fails.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.NewSQLite(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
