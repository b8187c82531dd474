package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/radimbig2/SRM/pkg/database"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	db database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
