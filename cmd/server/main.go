package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/bizdir-backend/config"
	"github.com/ikkim/bizdir-backend/internal/app/controller"
	"github.com/ikkim/bizdir-backend/internal/app/repository"
	"github.com/ikkim/bizdir-backend/internal/app/service"
	"github.com/ikkim/bizdir-backend/internal/db"
	"github.com/ikkim/bizdir-backend/internal/middleware"
	"github.com/ikkim/bizdir-backend/internal/router"
	"github.com/ikkim/bizdir-backend/internal/scheduler"
	"github.com/ikkim/bizdir-backend/internal/storage"
	"github.com/ikkim/bizdir-backend/pkg/courier"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	bizredis "github.com/ikkim/bizdir-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: logFormat == "console",
	})

	logger.Info("Starting business directory API", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed categories and cities
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Lookup cache is optional
	cache, err := bizredis.Connect(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, lookup cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() { _ = cache.Close() }()

	courierClient := courier.NewClient(courier.Config{
		BaseURL:  cfg.Courier.BaseURL,
		Username: cfg.Courier.Username,
		Password: cfg.Courier.Password,
		Timeout:  cfg.Courier.Timeout,
	}, courier.NewTokenCache())
	if !courierClient.Configured() {
		logger.Info("Courier API not configured, city and area lookups use stored data")
	}

	logoStorage := storage.NewS3Storage(
		context.Background(),
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	if !logoStorage.Enabled() {
		logger.Info("Logo uploads disabled, S3 bucket or credentials not set")
	}

	// Initialize repositories
	conn := db.GetDB()
	businessRepo := repository.NewBusinessRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	cityRepo := repository.NewCityRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)

	// Initialize services
	businessService := service.NewBusinessService(businessRepo, categoryRepo, logoStorage)
	reviewService := service.NewReviewService(reviewRepo, businessRepo)
	categoryService := service.NewCategoryService(categoryRepo, businessRepo)
	locationService := service.NewLocationService(courierClient, cache, cityRepo)
	searchService := service.NewSearchService(businessRepo, categoryRepo)
	sitemapService := service.NewSitemapService(businessRepo, cfg.Site.BaseURL)

	// Initialize controllers
	businessController := controller.NewBusinessController(businessService)
	reviewController := controller.NewReviewController(reviewService)
	catalogController := controller.NewCatalogController(categoryService, locationService, searchService, sitemapService)
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		return db.Ping(ctx, conn)
	})

	// Setup router
	r := router.NewRouter(
		businessController,
		reviewController,
		catalogController,
		healthController,
		middleware.NewMetrics(),
		cfg,
	)
	engine := r.Setup()

	citySync := scheduler.NewCitySyncScheduler(locationService, cfg.Jobs.CitySyncCron)
	if err := citySync.Start(); err != nil {
		logger.Fatal("Failed to start city sync scheduler", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	citySync.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
