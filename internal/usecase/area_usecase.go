package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/usecase/dto"
)

const (
	DefaultIsochroneMinutes = 15
	noSchoolsMessage        = "ამ არეალში სკოლები არ მოიძებნა"
)

// AreaUseCase - анализ зоны достижимости вокруг выбранной точки
type AreaUseCase struct {
	directions   repository.DirectionsRepository
	store        repository.DatasetStore
	cacheRepo    repository.CacheRepository
	tracker      *RequestTracker
	logger       *zap.Logger
	isochroneTTL time.Duration
}

// NewAreaUseCase - создание нового AreaUseCase
func NewAreaUseCase(
	directions repository.DirectionsRepository,
	store repository.DatasetStore,
	cacheRepo repository.CacheRepository,
	tracker *RequestTracker,
	logger *zap.Logger,
	isochroneTTL time.Duration,
) *AreaUseCase {
	return &AreaUseCase{
		directions:   directions,
		store:        store,
		cacheRepo:    cacheRepo,
		tracker:      tracker,
		logger:       logger,
		isochroneTTL: isochroneTTL,
	}
}

// Analyze - ДТП, детсады и школы внутри изохроны (или переданного полигона)
func (uc *AreaUseCase) Analyze(ctx context.Context, req dto.AreaAnalyzeRequest) (*dto.AreaAnalyzeResponse, error) {
	center := req.Center.GeoPoint()
	if !center.Valid() {
		return nil, apperrors.ErrInvalidCoordinates
	}

	mode := domain.TravelMode(req.Mode)
	if req.Mode == "" {
		mode = domain.ModeWalking
	}
	if !mode.Valid() {
		return nil, apperrors.ErrInvalidTravelMode
	}
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = DefaultIsochroneMinutes
	}

	ctx, token := uc.tracker.Begin(ctx, req.SessionID, ChannelArea)
	defer token.Done()

	var area orb.Geometry
	if req.Polygon != nil {
		area = req.Polygon.Geometry()
		switch area.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"polygon": "must be Polygon or MultiPolygon",
			})
		}
	} else {
		iso, err := uc.isochrone(ctx, center, mode, minutes)
		if err != nil {
			if !token.Current() {
				return nil, apperrors.ErrRequestSuperseded
			}
			return nil, err
		}
		area = iso
	}

	report := &domain.AreaReport{
		Center:  center,
		Polygon: geojson.NewFeature(area),
	}
	if req.Polygon == nil {
		report.Mode = mode
		report.Minutes = minutes
		report.Polygon.Properties["mode"] = string(mode)
		report.Polygon.Properties["contour"] = minutes
	}

	snapshot := uc.store.Snapshot()
	if snapshot == nil {
		snapshot = &domain.DatasetSnapshot{}
	}

	report.Accidents = analysis.AccidentStatsFor(analysis.FilterInPolygon(snapshot.Accidents, area))

	points := make([]domain.GeoPoint, len(snapshot.Kindergartens))
	for i, k := range snapshot.Kindergartens {
		points[i] = k.Location
	}
	report.KindergartenCount = len(analysis.FilterPointsInPolygon(points, area))

	schools := make([]domain.School, 0)
	for _, s := range snapshot.Schools {
		if analysis.Contains(area, s.Location.Orb()) {
			schools = append(schools, s)
		}
	}
	report.Schools = analysis.SummarizeSchools(schools)
	if report.Schools == nil {
		report.SchoolsMessage = noSchoolsMessage
	}

	if !token.Current() {
		return nil, apperrors.ErrRequestSuperseded
	}

	uc.logger.Debug("Area analyzed",
		zap.String("request_id", token.ID),
		zap.Int("accidents", report.Accidents.Total),
		zap.Int("kindergartens", report.KindergartenCount),
		zap.Int("schools", len(schools)))

	return &dto.AreaAnalyzeResponse{
		RequestID: token.ID,
		Report:    report,
	}, nil
}

func (uc *AreaUseCase) isochrone(ctx context.Context, center domain.GeoPoint, mode domain.TravelMode, minutes int) (orb.Geometry, error) {
	cacheKey := fmt.Sprintf("isochrone:%s:%.5f:%.5f:%d", mode, center.Lat, center.Lon, minutes)

	cached, err := uc.cacheRepo.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		if g, err := geojson.UnmarshalGeometry(cached); err == nil {
			uc.logger.Debug("Isochrone cache hit", zap.String("key", cacheKey))
			return g.Geometry(), nil
		}
	}

	iso, err := uc.directions.GetIsochrone(ctx, center, mode, minutes)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			uc.logger.Error("Failed to get isochrone",
				zap.String("mode", string(mode)),
				zap.Int("minutes", minutes),
				zap.Error(err))
		}
		return nil, err
	}

	if data, err := geojson.NewGeometry(iso.Geometry).MarshalJSON(); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.isochroneTTL); err != nil {
			uc.logger.Warn("Failed to cache isochrone", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return iso.Geometry, nil
}
