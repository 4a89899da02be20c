// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/api"
	"github.com/suqpos/backend-go/internal/cache"
	"github.com/suqpos/backend-go/internal/config"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/export"
	"github.com/suqpos/backend-go/internal/repository/postgres"
	"github.com/suqpos/backend-go/internal/service"
	"github.com/suqpos/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.UseJSON()
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Metrics snapshot cache, optional
	snapshotCache, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		snapshotCache = cache.NewNoopSnapshotCache()
	}

	// Report exports, optional
	reporter, err := export.NewReporter(cfg.Storage)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize report storage")
	}

	// Repositories
	productRepo := postgres.NewProductRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	movementRepo := postgres.NewMovementRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Change event fan-out
	hub := events.NewHub()

	// Services
	services := &api.Services{
		Metrics:       service.NewMetricsService(saleRepo, expenseRepo, movementRepo, productRepo, snapshotCache),
		Sales:         service.NewSalesService(saleRepo, productRepo, hub, snapshotCache),
		Products:      service.NewProductService(productRepo, saleRepo, hub, snapshotCache),
		Expenses:      service.NewExpenseService(expenseRepo, hub, snapshotCache),
		Notifications: service.NewNotificationService(notificationRepo, hub),
		Reporter:      reporter,
		Hub:           hub,
	}

	// Project sale and stock changes into owner notifications
	projectorCtx, stopProjector := context.WithCancel(context.Background())
	defer stopProjector()
	projector := service.NewNotificationProjector(notificationRepo, userRepo, hub)
	go projector.Run(projectorCtx)

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	stopProjector()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
