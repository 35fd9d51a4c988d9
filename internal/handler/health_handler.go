package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FlushStatus reports the outcome of the latest persistence attempt
type FlushStatus interface {
	LastFlushError() error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	status FlushStatus
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(status FlushStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// HealthResponse is the liveness payload. Persistence failures degrade
// the status but never take the service down.
type HealthResponse struct {
	Status       string `json:"status"`
	Persistence  string `json:"persistence"`
	LastFlushErr string `json:"lastFlushError,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Persistence: "ok"}
	if err := h.status.LastFlushError(); err != nil {
		resp.Status = "degraded"
		resp.Persistence = "failing"
		resp.LastFlushErr = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
