package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/config"
	"github.com/sea-companion/internal/delivery/http/handler"
	"github.com/sea-companion/internal/delivery/http/middleware"
	"github.com/sea-companion/internal/pkg/errors"
	"github.com/sea-companion/internal/pkg/utils"
)

// HealthCheck - проверка внешней зависимости (Redis, Postgres)
type HealthCheck = func(ctx context.Context) error

// Handlers - обработчики HTTP API
type Handlers struct {
	Catch    *handler.CatchHandler
	Trip     *handler.TripHandler
	Alert    *handler.AlertHandler
	Settings *handler.SettingsHandler
	Sync     *handler.SyncHandler
	Zone     *handler.ZoneHandler
	Location *handler.LocationHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	checks   map[string]HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, checks map[string]HealthCheck) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Sea Companion",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		checks:   checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение, для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	h := s.handlers

	api.Get("/health", s.health)

	// Catches
	api.Get("/catches", h.Catch.List)
	api.Post("/catches", h.Catch.Create)
	api.Delete("/catches", h.Catch.Clear)

	// Trips
	api.Get("/trips", h.Trip.List)
	api.Post("/trips", h.Trip.Plan)
	api.Delete("/trips", h.Trip.Clear)
	api.Post("/route/optimize", h.Trip.Optimize)

	// Alerts
	api.Get("/alerts", h.Alert.List)
	api.Post("/alerts", h.Alert.Create)
	api.Post("/alerts/seed", h.Alert.Seed)
	api.Post("/alerts/:id/read", h.Alert.MarkRead)
	api.Delete("/alerts", h.Alert.Clear)

	// Settings, forecast, cache
	api.Get("/settings", h.Settings.Get)
	api.Put("/settings", h.Settings.Update)
	api.Get("/forecast", h.Settings.GetForecast)
	api.Put("/forecast", h.Settings.SaveForecast)
	api.Delete("/forecast", h.Settings.ClearForecast)
	api.Post("/cache/clear", h.Settings.ClearCache)

	// Sync
	api.Get("/sync/pending", h.Sync.Pending)
	api.Post("/sync/now", h.Sync.SyncNow)
	api.Post("/sync/:collection/:id/synced", h.Sync.MarkSynced)
	api.Post("/sync/:collection/:id/failed", h.Sync.MarkFailed)
	api.Post("/sync/:collection/:id/retry", h.Sync.Retry)

	// Zones & boundaries
	api.Get("/zones", h.Zone.Zones)
	api.Get("/zones/active", h.Zone.ActiveZones)
	api.Post("/zones/classify", h.Zone.Classify)
	api.Get("/boundaries", h.Zone.Boundaries)
	api.Post("/boundaries/evaluate", h.Zone.Evaluate)
	api.Get("/boundaries/status", h.Zone.Status)

	// Location
	api.Get("/location", h.Location.Current)
	api.Post("/location", h.Location.Update)
}

// health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := make(fiber.Map, len(s.checks))

	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"time":         time.Now(),
		"dependencies": deps,
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паника) в формате AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return utils.SendError(c, errors.New("HTTP_ERROR", e.Message, e.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
