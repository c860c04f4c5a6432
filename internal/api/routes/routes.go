package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Godasy/visitor-management-system/internal/api/handlers"
	"github.com/Godasy/visitor-management-system/internal/api/middleware"
	"github.com/Godasy/visitor-management-system/internal/config"
	"github.com/Godasy/visitor-management-system/internal/geo"
	"github.com/Godasy/visitor-management-system/internal/jobs"
	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/logger"
	"github.com/Godasy/visitor-management-system/internal/metrics"
	"github.com/Godasy/visitor-management-system/internal/models"
	"github.com/Godasy/visitor-management-system/internal/services"
	"github.com/Godasy/visitor-management-system/internal/store"
)

// Register wires up API routes, performs automatic migrations and starts the
// daily rollup schedule.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := db.AutoMigrate(
		&models.Visit{},
		&models.BlacklistEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	clock := localtime.New(cfg.TZOffsetHours)
	visitStore := store.NewVisitStore(db, clock)
	resolver := geo.NewResolver(cfg.GeoIPDBPath)
	notifier := services.NewNotifierService(cfg.NotifyURLs)

	recorderService := services.NewRecorderService(visitStore, resolver, clock)
	statsService := services.NewStatsService(visitStore, clock)
	blacklistService := services.NewBlacklistService(visitStore, clock, notifier, cfg.AdminKey)

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(middleware.RequestID())

	visitorHandler := handlers.NewVisitorHandler(recorderService, statsService, blacklistService)
	api.GET("/visitor/record", visitorHandler.Record)
	api.GET("/visitor/stats", visitorHandler.Stats)
	api.POST("/visitor/reset", visitorHandler.Reset)

	blacklistHandler := handlers.NewBlacklistHandler(blacklistService)
	api.GET("/blacklist", blacklistHandler.List)
	api.POST("/blacklist/add", blacklistHandler.Add)
	api.DELETE("/blacklist/delete/:id", blacklistHandler.Delete)

	rollup := jobs.NewRollup(visitStore, clock)
	if err := rollup.Start(); err != nil {
		logger.Log().WithError(err).Error("failed to start daily rollup")
	}

	return nil
}
