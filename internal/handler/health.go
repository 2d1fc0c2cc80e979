package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/flightdelays/internal/middleware"
	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service is alive and the flight store
// is reachable, for uptime monitors and load balancers.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	healthCfg := h.server.Config.Observability.HealthChecks
	if healthCfg.Enabled && wants(healthCfg.Checks, "database") {
		timeout := healthCfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		dbStart := time.Now()

		if err := h.server.DB.Ping(ctx); err != nil {
			checks["database"] = map[string]interface{}{
				"status":        "unhealthy",
				"driver":        h.server.DB.Driver,
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthError(map[string]interface{}{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			stats := h.server.DB.DB.Stats()
			checks["database"] = map[string]interface{}{
				"status":           "healthy",
				"driver":           h.server.DB.Driver,
				"response_time":    time.Since(dbStart).String(),
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
			}

			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthError sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordHealthError(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}

func wants(checks []string, name string) bool {
	for _, c := range checks {
		if c == name {
			return true
		}
	}
	return false
}
