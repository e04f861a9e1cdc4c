// Package server HTTP-сервер: сборка зависимостей, маршруты и жизненный
// цикл с мягкой остановкой.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/importer"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/internal/config"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/handlers"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/middleware"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/monitoring"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/services"
)

// Version версия приложения, переопределяется при сборке через ldflags
var Version = "dev"

// Server HTTP-сервер приложения
type Server struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	db      *database.DB
	engine  *gin.Engine
	httpSrv *http.Server
	metrics *monitoring.MetricsCollector
}

// New собирает сервер со всеми зависимостями
func New(cfg *config.Config, log *zap.SugaredLogger, db *database.DB) *Server {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetricsCollector()
	health := monitoring.NewHealthChecker(Version, db.Conn())

	reg := registry.New()
	pipeline := importer.NewPipeline(reg, matching.DefaultScoringConfig(), log)

	uploadService := services.NewUploadService(db, pipeline, metrics, log,
		cfg.UploadDir, cfg.MaxUploadSizeMB, cfg.IngestParallelism)
	snapshotService := services.NewSnapshotService(db, metrics, log, cfg.DiffCacheTTL)
	dashboardService := services.NewDashboardService(db, log)

	base := handlers.NewBaseHandler(log)
	uploadHandler := handlers.NewUploadHandler(base, uploadService)
	entityHandler := handlers.NewEntityHandler(base, db)
	snapshotHandler := handlers.NewSnapshotHandler(base, snapshotService)
	dashboardHandler := handlers.NewDashboardHandler(base, dashboardService)
	monitoringHandler := handlers.NewMonitoringHandler(base, health)

	engine := gin.New()
	engine.Use(
		middleware.GinRequestIDMiddleware(),
		middleware.GinRecoveryMiddleware(log),
		middleware.GinLoggerMiddleware(log),
		middleware.GinCORSMiddleware(),
		middleware.GinGzipMiddleware(),
		middleware.GinRateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		metrics.GinMiddleware(),
	)

	server := &Server{
		cfg:     cfg,
		log:     log,
		db:      db,
		engine:  engine,
		metrics: metrics,
		httpSrv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	server.registerRoutes(uploadHandler, entityHandler, snapshotHandler, dashboardHandler, monitoringHandler)
	return server
}

// registerRoutes регистрирует все маршруты API
func (s *Server) registerRoutes(
	upload *handlers.UploadHandler,
	entity *handlers.EntityHandler,
	snapshot *handlers.SnapshotHandler,
	dashboard *handlers.DashboardHandler,
	mon *handlers.MonitoringHandler,
) {
	s.engine.GET("/health", mon.HandleHealth)
	s.engine.GET("/health/live", mon.HandleLiveness)
	s.engine.GET("/metrics", s.metrics.Handler())

	api := s.engine.Group("/api")
	{
		api.POST("/imports", upload.HandleUpload)
		api.GET("/imports", upload.HandleListImportRuns)

		api.GET("/dashboard", dashboard.HandleSummary)

		api.GET("/projects", entity.HandleListProjects)
		api.GET("/projects/:project_id/areas", entity.HandleListAreas)
		api.GET("/projects/:project_id/cells", entity.HandleListCells)
		api.GET("/projects/:project_id/robots", entity.HandleListRobots)
		api.GET("/projects/:project_id/tools", entity.HandleListTools)

		api.POST("/projects/:project_id/snapshots", snapshot.HandleCreateSnapshot)
		api.GET("/projects/:project_id/snapshots", snapshot.HandleListSnapshots)
		api.DELETE("/projects/:project_id/snapshots", snapshot.HandleDeleteProjectSnapshots)
		api.GET("/projects/:project_id/diff/latest", snapshot.HandleDiffLatest)

		api.GET("/snapshots/diff", snapshot.HandleDiff)
		api.GET("/snapshots/:id", snapshot.HandleGetSnapshot)
		api.DELETE("/snapshots/:id", snapshot.HandleDeleteSnapshot)
	}
}

// Engine отдает роутер для тестов
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run запускает сервер и мягко останавливает его по отмене контекста
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server starting", "addr", s.httpSrv.Addr, "version", Version)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
