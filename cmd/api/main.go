package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/zerobudget/internal/amqp"
	"github.com/dafibh/zerobudget/internal/config"
	"github.com/dafibh/zerobudget/internal/handler"
	"github.com/dafibh/zerobudget/internal/middleware"
	"github.com/dafibh/zerobudget/internal/repository"
	"github.com/dafibh/zerobudget/internal/service"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/util"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title zerobudget API
// @version 1.0
// @description Zero-based monthly budgeting ledger
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open the snapshot repository and load the budget
	repo, release, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer release()

	st, err := store.Open(context.Background(), repo, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load budget")
	}

	// Event fan-out: WebSocket hub, plus AMQP when configured
	hub := websocket.NewHub()
	publisher := websocket.NewMultiPublisher(hub)
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := amqp.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer amqpPublisher.Close()
		publisher.Add(amqpPublisher)
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Publishing events to AMQP")
	}

	// Initialize services
	uuids := util.UUIDGenerator{}
	ulids := util.NewULIDGenerator()
	categoryService := service.NewCategoryService(st, uuids)
	templateService := service.NewRecurringTemplateService(st, uuids)
	monthService := service.NewMonthService(st, ulids)
	transactionService := service.NewTransactionService(st, ulids)
	summaryService := service.NewSummaryService(st)
	budgetService := service.NewBudgetService(st)

	categoryService.SetEventPublisher(publisher)
	templateService.SetEventPublisher(publisher)
	monthService.SetEventPublisher(publisher)
	transactionService.SetEventPublisher(publisher)
	budgetService.SetEventPublisher(publisher)

	// Initialize auth middleware
	authMiddleware := middleware.NewAPITokenAuthMiddleware(cfg.APIToken)
	if !authMiddleware.Enabled() {
		log.Warn().Msg("API_TOKEN is not set, authentication is disabled")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Health:      handler.NewHealthHandler(st),
		Category:    handler.NewCategoryHandler(categoryService),
		Recurring:   handler.NewRecurringTemplateHandler(templateService),
		Month:       handler.NewMonthHandler(monthService),
		Summary:     handler.NewSummaryHandler(summaryService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Budget:      handler.NewBudgetHandler(budgetService),
		WebSocket:   handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Register routes
	handler.RegisterRoutes(e, authMiddleware, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageBackend).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.CloseAll()

	// Wait for the last snapshot to reach storage
	if err := st.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to persist final budget snapshot")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
