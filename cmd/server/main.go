package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/config"
	"github.com/stwalsh4118/icyapa/internal/database"
	"github.com/stwalsh4118/icyapa/internal/handlers"
	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/seed"
	"github.com/stwalsh4118/icyapa/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	seedLoadTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting iCyapa directory API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"seed_source": cfg.Seed.Source,
	})

	// Load the seed dataset; the postgres source keeps its pool open for readiness checks
	ds, db, err := loadDataset(cfg, log)
	if err != nil {
		log.Fatal("Failed to load seed dataset", err, map[string]interface{}{
			"seed_source": cfg.Seed.Source,
		})
	}
	var pinger handlers.Pinger
	if db != nil {
		defer db.Close()
		pinger = db
	}

	// Initialize repository and service layers
	store := repository.NewDirectoryStore(ds, repository.WithTrendingLimit(cfg.Directory.TrendingLimit))
	ads := repository.NewAdCatalog(ds.Ads)

	counts := store.Counts()
	log.Info("Directory seeded", map[string]interface{}{
		"zones":      counts.Zones,
		"buildings":  counts.Buildings,
		"businesses": counts.Businesses,
		"ads":        len(ds.Ads),
	})

	directoryService := services.NewDirectoryService(store, ads, log)
	submissionService := services.NewSubmissionService(store, id.Generate, log)
	adminService := services.NewAdminService(store, id.Generate, log)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	handlers.RegisterRoutes(router, handlers.Handlers{
		Health:     handlers.NewHealthHandler(pinger, store, cfg.Server.Env, cfg.Seed.Source),
		Directory:  handlers.NewDirectoryHandler(directoryService),
		Submission: handlers.NewSubmissionHandler(submissionService),
		Admin:      handlers.NewAdminHandler(adminService),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// loadDataset reads the initial directory from the configured source. The
// returned database is non-nil only for the postgres source.
func loadDataset(cfg *config.Config, log *logger.Logger) (seed.Dataset, *database.Database, error) {
	switch cfg.Seed.Source {
	case config.SeedFile:
		ds, err := seed.LoadFile(cfg.Seed.File)
		if err != nil {
			return seed.Dataset{}, nil, err
		}
		log.Info("Loaded seed file", map[string]interface{}{"path": cfg.Seed.File})
		return ds, nil, nil

	case config.SeedPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), seedLoadTimeout)
		defer cancel()

		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return seed.Dataset{}, nil, err
		}
		log.Info("Database connection established", map[string]interface{}{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Name,
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})

		ds, err := seed.LoadPostgres(ctx, db.Pool)
		if err != nil {
			db.Close()
			return seed.Dataset{}, nil, err
		}
		return ds, db, nil

	default:
		return seed.Default(), nil, nil
	}
}
