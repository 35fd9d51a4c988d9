package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/middleware"
	"github.com/dafibh/zerobudget/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TokenValidator checks the API token presented by a WebSocket client
type TokenValidator interface {
	Valid(token string) bool
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *websocket.Hub
	validator      TokenValidator
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, validator TokenValidator, allowedOrigins []string) *WebSocketHandler {
	// Build origin lookup map
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		validator:      validator,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] || h.allowedOrigins["*"] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws.
// The optional month query parameter limits the stream to one month's events
// plus budget-wide ones.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	if h.validator != nil && !h.validator.Valid(c.QueryParam(middleware.TokenQueryParam)) {
		log.Debug().Msg("WebSocket connection rejected: invalid token")
		return NewUnauthorizedError(c, "Invalid or missing token")
	}

	month := ""
	if raw := c.QueryParam("month"); raw != "" {
		key, err := domain.ParseMonthKey(raw)
		if err != nil {
			return handleServiceError(c, err, "month", "Invalid month")
		}
		month = key.String()
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	// Create client and register with hub
	client := websocket.NewClient(conn, month, h.hub)
	h.hub.Register(client)

	log.Info().
		Str("month", month).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	// Start read/write pumps in goroutines
	go client.WritePump()
	go client.ReadPump()

	return nil
}
