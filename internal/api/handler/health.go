package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// Checks store and Redis connectivity before declaring the service ready.
// Redis is optional: when no client is configured it is reported as skipped.
type HealthDependenciesHandler struct {
	db    *sql.DB
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *sql.DB, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                      `json:"status"`
	Checks map[string]dependencyStatus `json:"checks"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]dependencyStatus{}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["sqlite"] = dependencyStatus{Status: "down", Error: err.Error()}
		healthy = false
	} else {
		checks["sqlite"] = dependencyStatus{Status: "up"}
	}

	if h.redis == nil {
		checks["redis"] = dependencyStatus{Status: "skipped"}
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = dependencyStatus{Status: "down", Error: err.Error()}
		healthy = false
	} else {
		checks["redis"] = dependencyStatus{Status: "up"}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}
	return c.JSON(status, readinessResponse{Status: overall, Checks: checks})
}
