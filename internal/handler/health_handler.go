package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} Envelope
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	return respond(c, http.StatusOK, "Service is healthy", map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
