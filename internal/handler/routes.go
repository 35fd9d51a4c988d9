package handler

import (
	"github.com/dafibh/zerobudget/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	Health      *HealthHandler
	Category    *CategoryHandler
	Recurring   *RecurringTemplateHandler
	Month       *MonthHandler
	Summary     *SummaryHandler
	Transaction *TransactionHandler
	Budget      *BudgetHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.APITokenAuthMiddleware, h Handlers) {
	e.GET("/health", h.Health.Health)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// Real-time event stream; the token travels as a query parameter
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API version 1 (protected when API_TOKEN is set)
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", h.Category.CreateCategory)
	categories.GET("", h.Category.ListCategories)

	// Recurring template routes
	recurring := api.Group("/recurring-templates")
	recurring.POST("", h.Recurring.CreateTemplate)
	recurring.GET("", h.Recurring.ListTemplates)

	// Month routes
	months := api.Group("/months")
	months.GET("", h.Month.ListLedgers)
	months.GET("/current", h.Month.GetCurrent)
	months.GET("/:month", h.Month.GetLedger)
	months.GET("/:month/rollover", h.Month.PreviewRollover)
	months.POST("/:month/open", h.Month.OpenMonth)
	months.GET("/:month/summary", h.Summary.GetSummary)
	months.GET("/:month/transactions", h.Transaction.ListTransactions)
	months.POST("/:month/transactions", h.Transaction.RecordTransaction)

	// Whole-budget routes
	api.POST("/reset", h.Budget.Reset)
}
