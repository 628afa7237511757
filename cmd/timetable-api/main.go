package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-timetable-api/api/swagger"
	"github.com/noah-isme/sma-timetable-api/internal/handler"
	"github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/cache"
	"github.com/noah-isme/sma-timetable-api/pkg/config"
	"github.com/noah-isme/sma-timetable-api/pkg/database"
	"github.com/noah-isme/sma-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/requestid"
)

// @title SMA Timetable API
// @version 1.0.0
// @description Weekly school timetable generation and conflict auditing
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logr.Fatal("storage unavailable", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheRepo, cacheReady := openCache(ctx, cfg, logr)
	defer cacheRepo.Close() //nolint:errcheck

	if cfg.SeedDemo {
		seeder := service.NewSeedService(store.Teachers, store.Classes, store.Subjects, store.Requirements, store.Availability, logr)
		if _, err := seeder.Seed(ctx); err != nil {
			logr.Fatal("demo seed failed", zap.Error(err))
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metrics))
	}

	validate := service.NewValidator()
	sources := service.Sources{
		Teachers:     store.Teachers,
		Classes:      store.Classes,
		Subjects:     store.Subjects,
		Requirements: store.Requirements,
		Availability: store.Availability,
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Conflicts.CacheTTL, logr, cacheReady)
	conflicts := service.NewConflictService(sources, store.Timetable, cacheSvc, metrics, logr)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:            cfg.JWT.Secret,
		Expiry:            cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})

	checks := map[string]handler.Pinger{"storage": store}
	if cacheSvc.Enabled() {
		checks["cache"] = cacheRepo
	}

	handlers := handler.Handlers{
		Teachers: handler.NewTeacherHandler(
			service.NewTeacherService(store.Teachers, validate, logr),
			service.NewAvailabilityService(store.Availability, store.Teachers, validate, logr),
		),
		Classes: handler.NewClassHandler(
			service.NewClassService(store.Classes, validate, logr),
			service.NewRequirementService(store.Requirements, store.Classes, store.Subjects, validate, logr),
		),
		Subjects: handler.NewSubjectHandler(service.NewSubjectService(store.Subjects, validate, logr)),
		Timetable: handler.NewTimetableHandler(
			service.NewTimetableEntryService(store.Timetable, store.Classes, store.Teachers, store.Subjects, store.Availability, validate, logr),
			service.NewTimetableService(sources, store.Timetable, nil, validate, metrics, logr),
			service.NewExportService(store.Classes, store.Timetable, store.Teachers, store.Subjects, logr),
		),
		Conflicts: handler.NewConflictHandler(conflicts),
		Auth:      handler.NewAuthHandler(authSvc),
		Metrics:   handler.NewMetricsHandler(metrics, checks),
	}

	opts := handler.RouteOptions{APIPrefix: cfg.APIPrefix, Invalidator: conflicts}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	if cfg.Auth.Enabled {
		if cfg.Auth.AdminPasswordHash == "" {
			logr.Warn("AUTH_ENABLED without ADMIN_PASSWORD_HASH, writes cannot be authorised")
		}
		opts.Guard = []gin.HandlerFunc{middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin)}
	}
	handler.RegisterRoutes(r, handlers, opts)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	if cfg.Storage != config.StoragePostgres {
		return repository.NewMemoryStore(), nil
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return repository.NewPostgresStore(db), nil
}

// openCache connects to Redis when conflict caching is enabled. An unreachable
// server disables caching instead of failing startup.
func openCache(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*repository.CacheRepository, bool) {
	if !cfg.Conflicts.CacheEnabled {
		return repository.NewCacheRepository(nil, ""), false
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("conflict cache disabled", zap.Error(err))
		return repository.NewCacheRepository(nil, ""), false
	}
	return repository.NewCacheRepository(client, "timetable:"), true
}
