package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/zerobudget/internal/middleware"
	"github.com/dafibh/zerobudget/internal/service"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/testutil"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// testAPI is a fully routed echo instance over an in-memory store
type testAPI struct {
	e     *echo.Echo
	store *store.Store
	hub   *websocket.Hub
	token string
}

func newTestAPI(t *testing.T, token string) *testAPI {
	t.Helper()

	st := store.New(nil, nil, zerolog.Nop())
	hub := websocket.NewHub()
	t.Cleanup(hub.CloseAll)

	categoryService := service.NewCategoryService(st, testutil.SequentialIDGenerator("cat-"))
	templateService := service.NewRecurringTemplateService(st, testutil.SequentialIDGenerator("tpl-"))
	monthService := service.NewMonthService(st, testutil.SequentialIDGenerator("txn-auto-"))
	transactionService := service.NewTransactionService(st, testutil.SequentialIDGenerator("txn-"))
	summaryService := service.NewSummaryService(st)
	budgetService := service.NewBudgetService(st)

	for _, s := range []interface {
		SetEventPublisher(websocket.EventPublisher)
	}{categoryService, templateService, monthService, transactionService, budgetService} {
		s.SetEventPublisher(hub)
	}

	auth := middleware.NewAPITokenAuthMiddleware(token)
	e := echo.New()
	RegisterRoutes(e, auth, Handlers{
		Health:      NewHealthHandler(st),
		Category:    NewCategoryHandler(categoryService),
		Recurring:   NewRecurringTemplateHandler(templateService),
		Month:       NewMonthHandler(monthService),
		Summary:     NewSummaryHandler(summaryService),
		Transaction: NewTransactionHandler(transactionService),
		Budget:      NewBudgetHandler(budgetService),
		WebSocket:   NewWebSocketHandler(hub, auth, nil),
	})

	return &testAPI{e: e, store: st, hub: hub, token: token}
}

// do sends a request through the router. body is JSON-encoded unless it is a string.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if a.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// createCategory adds a category through the API and returns its id
func (a *testAPI) createCategory(t *testing.T, name, limit string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/categories", map[string]string{"name": name, "limit": limit})
	expectStatus(t, rec, http.StatusCreated)
	return decode[CategoryResponse](t, rec).ID
}

func (a *testAPI) openMonth(t *testing.T, month, income string) OpenMonthResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/months/"+month+"/open", map[string]string{"income": income})
	expectStatus(t, rec, http.StatusCreated)
	return decode[OpenMonthResponse](t, rec)
}

func (a *testAPI) record(t *testing.T, month, categoryID, amount string) TransactionResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/months/"+month+"/transactions",
		map[string]string{"categoryId": categoryID, "amount": amount})
	expectStatus(t, rec, http.StatusCreated)
	return decode[TransactionResponse](t, rec)
}
