package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/config"
	"github.com/urbanyx-service/internal/delivery/http/handler"
	"github.com/urbanyx-service/internal/delivery/http/middleware"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	healthHandler      *handler.HealthHandler
	datasetHandler     *handler.DatasetHandler
	analysisHandler    *handler.AnalysisHandler
	environmentHandler *handler.EnvironmentHandler
	scoreHandler       *handler.ScoreHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	datasetHandler *handler.DatasetHandler,
	analysisHandler *handler.AnalysisHandler,
	environmentHandler *handler.EnvironmentHandler,
	scoreHandler *handler.ScoreHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Urbanyx Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                app,
		config:             cfg,
		logger:             logger,
		healthHandler:      healthHandler,
		datasetHandler:     datasetHandler,
		analysisHandler:    analysisHandler,
		environmentHandler: environmentHandler,
		scoreHandler:       scoreHandler,
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
	s.app.Use(middleware.Logger(s.logger, s.config.Server.SlowRequestThreshold))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Datasets
	api.Get("/datasets/status", s.datasetHandler.Status)
	api.Post("/datasets/reload", s.datasetHandler.Reload)
	api.Get("/kindergartens", s.datasetHandler.ListKindergartens)

	// Analysis (last-request-wins по session_id)
	api.Post("/routes/analyze", s.analysisHandler.AnalyzeRoute)
	api.Post("/area/analyze", s.analysisHandler.AnalyzeArea)

	// Environment
	api.Get("/playgrounds", s.environmentHandler.GetPlaygrounds)
	api.Get("/streetview", s.environmentHandler.GetStreetView)

	// Scores
	api.Post("/scores/school", s.scoreHandler.ScoreSchool)
	api.Post("/scores/playground", s.scoreHandler.ScorePlayground)
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

// customErrorHandler - ошибки fiber (404 маршрута, паники) в общем формате ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			logger.Warn("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", e.Code),
				zap.Error(err),
			)
			appErr := apperrors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr.Code = "NOT_FOUND"
			}
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, apperrors.ErrInternalServer)
	}
}
