package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// PlaygroundUseCase - площадки вокруг точки из OpenStreetMap
type PlaygroundUseCase struct {
	playgroundRepo repository.PlaygroundRepository
	cacheRepo      repository.CacheRepository
	logger         *zap.Logger
	defaultRadius  int
	cacheTTL       time.Duration
}

// NewPlaygroundUseCase - создание нового PlaygroundUseCase
func NewPlaygroundUseCase(
	playgroundRepo repository.PlaygroundRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	defaultRadius int,
	cacheTTL time.Duration,
) *PlaygroundUseCase {
	if defaultRadius <= 0 {
		defaultRadius = analysis.DefaultPlaygroundRadius
	}
	return &PlaygroundUseCase{
		playgroundRepo: playgroundRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		defaultRadius:  defaultRadius,
		cacheTTL:       cacheTTL,
	}
}

// Analyze - оценка площадок в радиусе. Ошибка Overpass не фатальна:
// возвращается пустой отчёт с сообщением.
func (uc *PlaygroundUseCase) Analyze(ctx context.Context, req dto.PlaygroundRequest) (*domain.PlaygroundReport, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, apperrors.ErrInvalidCoordinates
	}
	if req.Radius == 0 {
		req.Radius = uc.defaultRadius
	}
	if !utils.ValidateRadius(req.Radius) {
		return nil, apperrors.ErrInvalidRadius
	}

	center := domain.GeoPoint{Lat: req.Lat, Lon: req.Lon}
	cacheKey := fmt.Sprintf("overpass:playgrounds:%.5f:%.5f:%d", req.Lat, req.Lon, req.Radius)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		var elements []domain.OSMElement
		if err := json.Unmarshal(cached, &elements); err == nil {
			uc.logger.Debug("Playgrounds cache hit", zap.String("key", cacheKey))
			return analysis.AnalyzePlaygrounds(center, elements, req.Radius), nil
		}
	}

	elements, err := uc.playgroundRepo.FindPlaygrounds(ctx, center, req.Radius)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		uc.logger.Error("Failed to fetch playgrounds", zap.Error(err))
		return analysis.AnalyzePlaygrounds(center, nil, req.Radius), nil
	}

	if data, err := json.Marshal(elements); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache playgrounds", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return analysis.AnalyzePlaygrounds(center, elements, req.Radius), nil
}
