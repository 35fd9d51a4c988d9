package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTokenValidator accepts a single token
type mockTokenValidator struct {
	token string
}

func (m *mockTokenValidator) Valid(token string) bool {
	return token == m.token
}

func TestWebSocketHandler_NewHandler(t *testing.T) {
	hub := websocket.NewHub()
	validator := &mockTokenValidator{token: "secret"}
	allowedOrigins := []string{"http://localhost:3000", "https://budget.example.com"}

	handler := NewWebSocketHandler(hub, validator, allowedOrigins)

	assert.NotNil(t, handler)
	assert.Equal(t, hub, handler.hub)
	assert.Len(t, handler.allowedOrigins, 2)
	assert.True(t, handler.allowedOrigins["http://localhost:3000"])
}

func TestWebSocketHandler_InvalidToken(t *testing.T) {
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, &mockTokenValidator{token: "secret"}, nil)

	for _, target := range []string{"/ws", "/ws?token=wrong"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.HandleWS(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, 0, hub.ClientCount())
	}
}

func TestWebSocketHandler_InvalidMonth(t *testing.T) {
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws?month=2024-13", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.HandleWS(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "month", problem.Errors[0].Field)
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		expected       bool
	}{
		{"allowed origin", []string{"http://localhost:3000"}, "http://localhost:3000", true},
		{"disallowed origin", []string{"http://localhost:3000"}, "http://evil.com", false},
		{"no origin header", []string{"http://localhost:3000"}, "", true},
		{"wildcard", []string{"*"}, "http://anything.example", true},
		{"empty allow list", nil, "http://localhost:3000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewWebSocketHandler(websocket.NewHub(), nil, tt.allowedOrigins)

			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.expected, handler.checkOrigin(req))
		})
	}
}

func TestWebSocketHandler_StreamsMonthEvents(t *testing.T) {
	hub := websocket.NewHub()
	defer hub.CloseAll()
	handler := NewWebSocketHandler(hub, &mockTokenValidator{token: "secret"}, nil)

	e := echo.New()
	e.GET("/ws", handler.HandleWS)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=secret&month=2024-03"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	march := domain.MustParseMonthKey("2024-03")
	april := domain.MustParseMonthKey("2024-04")
	hub.Broadcast(websocket.TransactionCreated(april, map[string]string{"id": "april"}))
	hub.Broadcast(websocket.TransactionCreated(march, map[string]string{"id": "march"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string            `json:"type"`
		Month   string            `json:"month"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "transaction.created", event.Type)
	assert.Equal(t, "2024-03", event.Month)
	assert.Equal(t, "march", event.Payload["id"])
}
