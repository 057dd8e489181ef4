package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/repository"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "0.1.0"
	// HealthCheckTimeout is the timeout for database health checks
	HealthCheckTimeout = 2 * time.Second
)

// Database connection states reported by the readiness check.
const (
	DatabaseConnected     = "connected"
	DatabaseDisconnected  = "disconnected"
	DatabaseNotConfigured = "not_configured"
)

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreCounter reports how many records the directory holds.
type StoreCounter interface {
	Counts() repository.Counts
}

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	db        Pinger
	store     StoreCounter
	startTime time.Time
	env       string
	seed      string
}

// NewHealthHandler creates a new HealthHandler instance. db may be nil when
// the directory was not seeded from PostgreSQL.
func NewHealthHandler(db Pinger, store StoreCounter, env, seedSource string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		store:     store,
		startTime: time.Now(),
		env:       env,
		seed:      seedSource,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Store    repository.Counts `json:"store"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Uptime      string            `json:"uptime"`
	SeedSource  string            `json:"seed_source"`
	Store       repository.Counts `json:"store"`
}

// Health handles GET /health endpoint.
// This is a basic health check that always returns 200 OK.
// It does not check any dependencies and is used for basic liveness checks.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// Ready handles GET /health/ready endpoint.
// The directory is served from memory, so it is ready once seeded. When a
// database is attached it must also answer a ping; otherwise 503.
func (h *HealthHandler) Ready(c *gin.Context) {
	counts := h.store.Counts()

	if h.db == nil {
		c.JSON(http.StatusOK, ReadyResponse{
			Status:   "ready",
			Database: DatabaseNotConfigured,
			Store:    counts,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Database health check failed", err, map[string]interface{}{
				"timeout": HealthCheckTimeout.String(),
			})
		}

		c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:   "not_ready",
			Database: DatabaseDisconnected,
			Store:    counts,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyResponse{
		Status:   "ready",
		Database: DatabaseConnected,
		Store:    counts,
	})
}

// Info handles GET /api/v1/info endpoint.
// Returns API metadata including version, environment, uptime and store size.
func (h *HealthHandler) Info(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(uptime),
		SeedSource:  h.seed,
		Store:       h.store.Counts(),
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
