package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/repository/memory"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

func testRoute() *domain.Route {
	return &domain.Route{
		Geometry: orb.LineString{
			tbilisi.Orb(),
			offset(tbilisi, 0, 500).Orb(),
			offset(tbilisi, 0, 1000).Orb(),
		},
		DistanceMeters:  1000,
		DurationSeconds: 720,
		MaxSpeedsKmh:    []float64{40, 60},
	}
}

func newRouteUseCase(dirs *MockDirectionsRepository, accidents []domain.AccidentRecord) *usecase.RouteUseCase {
	store := memory.NewDatasetStore()
	store.Replace(&domain.DatasetSnapshot{
		Accidents: accidents,
		LoadedAt:  map[domain.DatasetKind]time.Time{domain.DatasetAccidents: time.Now()},
	})
	return usecase.NewRouteUseCase(dirs, store, usecase.NewRequestTracker(zap.NewNop()),
		analysis.RouteParams{BufferMeters: 20, DangerousWeight: 4}, zap.NewNop())
}

func TestRouteUseCase_Analyze(t *testing.T) {
	from := dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon}
	to := dto.Point{Lat: tbilisi.Lat, Lon: offset(tbilisi, 0, 1000).Lon}

	accidents := []domain.AccidentRecord{
		{ID: "on-route", Location: offset(tbilisi, 5, 250), Severity: domain.SeveritySevere, Weight: 2},
		{ID: "near-route", Location: offset(tbilisi, -10, 700), Severity: domain.SeverityLight, Weight: 1},
		{ID: "far", Location: offset(tbilisi, 300, 500), Severity: domain.SeveritySevere, Weight: 2},
	}

	t.Run("success", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		dirs.On("GetRoute", mock.Anything, from.GeoPoint(), to.GeoPoint(), domain.ModeDriving).Return(testRoute(), nil)
		uc := newRouteUseCase(dirs, accidents)

		resp, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{
			SessionID: "s1", From: from, To: to, Mode: "driving",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Report)

		assert.NotEmpty(t, resp.RequestID)
		assert.Equal(t, 1, resp.Report.SevereCrashes)
		assert.Equal(t, 1, resp.Report.LightCrashes)
		assert.Len(t, resp.Report.Segments, 2)
		assert.Equal(t, 1, resp.Report.Segments[0].AccidentCount)
		assert.Equal(t, 1, resp.Report.Segments[1].AccidentCount)
		assert.Equal(t, "მანქანით", resp.Report.ModeLabel)
		require.NotNil(t, resp.Report.AverageSpeedKmh)
		assert.Equal(t, 50.0, *resp.Report.AverageSpeedKmh)
		assert.True(t, resp.Report.CrashDataLoaded)
		assert.NotEqual(t, analysis.CrashDataMissingMessage, resp.Report.CrashMessage)
		dirs.AssertExpectations(t)
	})

	t.Run("accidents not loaded", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		dirs.On("GetRoute", mock.Anything, from.GeoPoint(), to.GeoPoint(), domain.ModeWalking).Return(testRoute(), nil)
		uc := usecase.NewRouteUseCase(dirs, memory.NewDatasetStore(), usecase.NewRequestTracker(zap.NewNop()),
			analysis.RouteParams{}, zap.NewNop())

		resp, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{From: from, To: to, Mode: "walking"})
		require.NoError(t, err)

		assert.False(t, resp.Report.CrashDataLoaded)
		assert.Equal(t, analysis.CrashDataMissingMessage, resp.Report.CrashMessage)
		assert.Zero(t, resp.Report.SevereCrashes)
		assert.NotEmpty(t, resp.Report.Segments)
	})

	t.Run("loaded dataset without severe crashes", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		dirs.On("GetRoute", mock.Anything, from.GeoPoint(), to.GeoPoint(), domain.ModeWalking).Return(testRoute(), nil)
		uc := newRouteUseCase(dirs, nil)

		resp, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{From: from, To: to, Mode: "walking"})
		require.NoError(t, err)

		assert.True(t, resp.Report.CrashDataLoaded)
		assert.Contains(t, resp.Report.CrashMessage, "არ დაფიქსირებულა")
	})

	t.Run("invalid mode", func(t *testing.T) {
		uc := newRouteUseCase(&MockDirectionsRepository{}, nil)

		_, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{From: from, To: to, Mode: "flying"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTravelMode)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := newRouteUseCase(&MockDirectionsRepository{}, nil)

		_, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{
			From: dto.Point{Lat: 91, Lon: 0}, To: to, Mode: "walking",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("route not found", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		dirs.On("GetRoute", mock.Anything, mock.Anything, mock.Anything, domain.ModeWalking).Return(nil, apperrors.ErrRouteNotFound)
		uc := newRouteUseCase(dirs, nil)

		_, err := uc.Analyze(context.Background(), dto.RouteAnalyzeRequest{From: from, To: to, Mode: "walking"})
		assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
	})
}

func TestRouteUseCase_NewerRequestSupersedesOlder(t *testing.T) {
	from := dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon}
	to := dto.Point{Lat: tbilisi.Lat, Lon: offset(tbilisi, 0, 1000).Lon}

	started := make(chan struct{})
	dirs := &MockDirectionsRepository{}
	dirs.On("GetRoute", mock.Anything, mock.Anything, mock.Anything, domain.ModeWalking).
		Once().
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			close(started)
			<-ctx.Done()
		}).
		Return(nil, context.Canceled)
	dirs.On("GetRoute", mock.Anything, mock.Anything, mock.Anything, domain.ModeWalking).
		Once().
		Return(testRoute(), nil)

	uc := newRouteUseCase(dirs, nil)
	req := dto.RouteAnalyzeRequest{SessionID: "same", From: from, To: to, Mode: "walking"}

	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.Analyze(context.Background(), req)
		firstErr <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request did not reach directions")
	}

	resp, err := uc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, resp.Report)

	select {
	case err := <-firstErr:
		assert.True(t, errors.Is(err, apperrors.ErrRequestSuperseded))
	case <-time.After(2 * time.Second):
		t.Fatal("first request was not cancelled")
	}
	dirs.AssertExpectations(t)
}

func TestRouteUseCase_StaleResultDroppedWhenUpstreamIgnoresCancel(t *testing.T) {
	from := dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon}
	to := dto.Point{Lat: tbilisi.Lat, Lon: offset(tbilisi, 0, 1000).Lon}

	started := make(chan struct{})
	release := make(chan struct{})
	dirs := &MockDirectionsRepository{}
	dirs.On("GetRoute", mock.Anything, mock.Anything, mock.Anything, domain.ModeWalking).
		Once().
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(testRoute(), nil)
	dirs.On("GetRoute", mock.Anything, mock.Anything, mock.Anything, domain.ModeWalking).
		Once().
		Return(testRoute(), nil)

	uc := newRouteUseCase(dirs, nil)
	req := dto.RouteAnalyzeRequest{SessionID: "same", From: from, To: to, Mode: "walking"}

	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.Analyze(context.Background(), req)
		firstErr <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request did not reach directions")
	}

	resp, err := uc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RequestID)

	close(release)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, apperrors.ErrRequestSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first request did not finish")
	}
	dirs.AssertExpectations(t)
}
