package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// RouteUseCase - анализ опасности маршрута по датасету ДТП
type RouteUseCase struct {
	directions repository.DirectionsRepository
	store      repository.DatasetStore
	tracker    *RequestTracker
	params     analysis.RouteParams
	logger     *zap.Logger
}

// NewRouteUseCase - создание нового RouteUseCase
func NewRouteUseCase(
	directions repository.DirectionsRepository,
	store repository.DatasetStore,
	tracker *RequestTracker,
	params analysis.RouteParams,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		directions: directions,
		store:      store,
		tracker:    tracker,
		params:     params,
		logger:     logger,
	}
}

// Analyze строит маршрут и оценивает его опасность. Более новый запрос той же
// сессии отменяет текущий: тогда возвращается ErrRequestSuperseded.
func (uc *RouteUseCase) Analyze(ctx context.Context, req dto.RouteAnalyzeRequest) (*dto.RouteAnalyzeResponse, error) {
	from, to := req.From.GeoPoint(), req.To.GeoPoint()
	if !from.Valid() || !to.Valid() {
		return nil, apperrors.ErrInvalidCoordinates
	}
	mode := domain.TravelMode(req.Mode)
	if !mode.Valid() {
		return nil, apperrors.ErrInvalidTravelMode
	}

	ctx, token := uc.tracker.Begin(ctx, req.SessionID, ChannelRoute)
	defer token.Done()

	route, err := uc.directions.GetRoute(ctx, from, to, mode)
	if err != nil {
		if !token.Current() {
			uc.logger.Debug("Route request dropped",
				zap.String("session_id", req.SessionID),
				zap.String("request_id", token.ID))
			return nil, apperrors.ErrRequestSuperseded
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		uc.logger.Error("Failed to get route", zap.String("mode", req.Mode), zap.Error(err))
		return nil, err
	}

	snapshot := uc.store.Snapshot()
	var accidents []domain.AccidentRecord
	if snapshot != nil {
		accidents = snapshot.Accidents
	}
	report := analysis.AnalyzeRoute(route, mode, accidents, uc.params)
	report.CrashDataLoaded = snapshot.Loaded(domain.DatasetAccidents)
	if !report.CrashDataLoaded {
		report.CrashMessage = analysis.CrashDataMissingMessage
	}

	if !token.Current() {
		return nil, apperrors.ErrRequestSuperseded
	}

	uc.logger.Debug("Route analyzed",
		zap.String("request_id", token.ID),
		zap.Float64("distance_km", report.DistanceKm),
		zap.Int("segments", len(report.Segments)),
		zap.Int("severe", report.SevereCrashes))

	return &dto.RouteAnalyzeResponse{
		RequestID: token.ID,
		Report:    report,
	}, nil
}
