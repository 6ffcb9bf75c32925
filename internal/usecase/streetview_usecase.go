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

const noStreetImagesMessage = "სამწუხაროდ, ვერ ვიპოვეთ ქუჩის ფოტოები ამ არეალში..."

// StreetViewUseCase - подбор уличных снимков вокруг точки
type StreetViewUseCase struct {
	imageryRepo repository.StreetImageryRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewStreetViewUseCase - создание нового StreetViewUseCase
func NewStreetViewUseCase(
	imageryRepo repository.StreetImageryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StreetViewUseCase {
	return &StreetViewUseCase{
		imageryRepo: imageryRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// Select - до пяти снимков на разных дистанциях 30-270 м от точки
func (uc *StreetViewUseCase) Select(ctx context.Context, req dto.StreetViewRequest) (*dto.StreetViewResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	center := domain.GeoPoint{Lat: req.Lat, Lon: req.Lon}
	raw, err := uc.images(ctx, center)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		uc.logger.Error("Failed to fetch street images", zap.Error(err))
		raw = nil
	}

	selected := analysis.SelectStreetImages(analysis.PrepareStreetImages(center, raw))

	resp := &dto.StreetViewResponse{
		Images: selected,
		Count:  len(selected),
	}
	if len(selected) == 0 {
		resp.Message = noStreetImagesMessage
	}
	return resp, nil
}

func (uc *StreetViewUseCase) images(ctx context.Context, center domain.GeoPoint) ([]domain.StreetImage, error) {
	cacheKey := fmt.Sprintf("mapillary:images:%.5f:%.5f", center.Lat, center.Lon)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		var images []domain.StreetImage
		if err := json.Unmarshal(cached, &images); err == nil {
			uc.logger.Debug("Street images cache hit", zap.String("key", cacheKey))
			return images, nil
		}
	}

	images, err := uc.imageryRepo.FindImages(ctx, analysis.StreetViewBounds(center))
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(images); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache street images", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return images, nil
}
