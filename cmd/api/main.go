package main

// @title Urbanyx Service API
// @version 1.0.0
// @description Сервис градостроительного анализа для детских садов и школ Тбилиси. Отчёты формируются на грузинском языке.
// @description
// @description Основные возможности:
// @description - Анализ маршрута по сегментам с плотностью ДТП в буфере
// @description - Анализ зоны доступности (изохрона Mapbox или свой полигон)
// @description - Оценка доступности школ и оборудования детских площадок
// @description - Уличные снимки Mapillary вокруг точки

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/urbanyx-service/docs/swagger"
	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/config"
	httpDelivery "github.com/urbanyx-service/internal/delivery/http"
	"github.com/urbanyx-service/internal/delivery/http/handler"
	"github.com/urbanyx-service/internal/domain/repository"
	"github.com/urbanyx-service/internal/infrastructure/dataset"
	"github.com/urbanyx-service/internal/infrastructure/mapbox"
	"github.com/urbanyx-service/internal/infrastructure/mapillary"
	"github.com/urbanyx-service/internal/infrastructure/overpass"
	"github.com/urbanyx-service/internal/pkg/logger"
	"github.com/urbanyx-service/internal/repository/cache"
	"github.com/urbanyx-service/internal/repository/memory"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/worker"
	datasetWorker "github.com/urbanyx-service/internal/worker/dataset"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Urbanyx Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. Cache: Redis если включён, иначе без кеша
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
	} else {
		log.Info("Redis disabled, responses are not cached")
		cacheRepo = cache.NewNoopCacheRepository()
	}

	// 4. Initialize Repositories
	datasetSource := dataset.NewDatasetClient(&cfg.Datasets, log)
	datasetStore := memory.NewDatasetStore()
	directionsRepo := mapbox.NewMapboxClient(&cfg.Mapbox, log)
	playgroundRepo := overpass.NewOverpassClient(&cfg.Overpass, log)
	imageryRepo := mapillary.NewMapillaryClient(&cfg.Mapillary, log)

	log.Info("Repositories initialized")

	// 5. Initialize Use Cases
	tracker := usecase.NewRequestTracker(log)

	datasetUC := usecase.NewDatasetUseCase(datasetSource, datasetStore, log)

	routeUC := usecase.NewRouteUseCase(
		directionsRepo,
		datasetStore,
		tracker,
		analysis.RouteParams{
			BufferMeters:    cfg.Analysis.SegmentBufferMeters,
			DangerousWeight: cfg.Analysis.DangerousWeight,
		},
		log,
	)

	areaUC := usecase.NewAreaUseCase(
		directionsRepo,
		datasetStore,
		cacheRepo,
		tracker,
		log,
		cfg.Cache.IsochroneTTL,
	)

	playgroundUC := usecase.NewPlaygroundUseCase(
		playgroundRepo,
		cacheRepo,
		log,
		cfg.Analysis.PlaygroundRadiusMeter,
		cfg.Cache.OverpassTTL,
	)

	streetViewUC := usecase.NewStreetViewUseCase(
		imageryRepo,
		cacheRepo,
		log,
		cfg.Cache.MapillaryTTL,
	)

	scoreUC := usecase.NewScoreUseCase(log)

	log.Info("Use cases initialized")

	// 6. Initial dataset load. Сервис стартует и без датасетов: они догрузятся через reload
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Datasets.Timeout+5*time.Second)
	if _, err := datasetUC.Reload(loadCtx); err != nil {
		log.Error("Initial dataset load failed", zap.Error(err))
	}
	cancelLoad()

	// 7. Background workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	workerManager := worker.NewWorkerManager(log)
	if cfg.Datasets.RefreshInterval > 0 {
		workerManager.Register(datasetWorker.NewRefreshWorker(
			datasetUC,
			cfg.Datasets.RefreshInterval,
			cfg.Datasets.Timeout+5*time.Second,
			log,
		))
	}
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Initialize HTTP Handlers
	healthHandler := handler.NewHealthHandler(datasetUC)
	datasetHandler := handler.NewDatasetHandler(datasetUC, log)
	analysisHandler := handler.NewAnalysisHandler(routeUC, areaUC, log)
	environmentHandler := handler.NewEnvironmentHandler(playgroundUC, streetViewUC, log)
	scoreHandler := handler.NewScoreHandler(scoreUC)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		healthHandler,
		datasetHandler,
		analysisHandler,
		environmentHandler,
		scoreHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := workerManager.Stop(shutdownTimeout); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}
	cancelWorkers()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
