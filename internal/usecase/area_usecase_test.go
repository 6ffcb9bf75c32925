package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/domain"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/repository/cache"
	"github.com/urbanyx-service/internal/repository/memory"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// квадрат ±500 м вокруг точки
func squareAround(p domain.GeoPoint, half float64) orb.Polygon {
	sw := offset(p, -half, -half).Orb()
	ne := offset(p, half, half).Orb()
	return orb.Polygon{orb.Ring{
		sw,
		{ne[0], sw[1]},
		ne,
		{sw[0], ne[1]},
		sw,
	}}
}

func areaSnapshot() *domain.DatasetSnapshot {
	now := time.Now()
	return &domain.DatasetSnapshot{
		Kindergartens: []domain.Kindergarten{
			{ID: "k1", Location: offset(tbilisi, 100, 100)},
			{ID: "k2", Location: offset(tbilisi, -200, 50)},
			{ID: "k3", Location: offset(tbilisi, 2000, 0)},
		},
		Accidents: []domain.AccidentRecord{
			{ID: "a1", Location: offset(tbilisi, 10, 10), Severity: domain.SeveritySevere, Weight: 2},
			{ID: "a2", Location: offset(tbilisi, -300, 200), Severity: domain.SeverityLight, Weight: 1},
			{ID: "a3", Location: offset(tbilisi, 0, 3000), Severity: domain.SeveritySevere, Weight: 2},
		},
		Schools: []domain.School{
			{ID: "s1", Location: offset(tbilisi, 50, -50), Properties: domain.TaggedRecord{
				"Ramp": "კარგი", "Adapted elevator": "კარგი", "Adapted WC": "კარგი",
				"students": 400.0, "occupancy": 80.0, "condition": "კარგი",
			}},
			{ID: "s2", Location: offset(tbilisi, 5000, 0), Properties: domain.TaggedRecord{"students": 100.0}},
		},
		LoadedAt: map[domain.DatasetKind]time.Time{
			domain.DatasetKindergartens: now,
			domain.DatasetAccidents:     now,
			domain.DatasetSchools:       now,
		},
	}
}

func newAreaUseCase(dirs *MockDirectionsRepository, cacheRepo *MockCacheRepository, snapshot *domain.DatasetSnapshot) *usecase.AreaUseCase {
	store := memory.NewDatasetStore()
	if snapshot != nil {
		store.Replace(snapshot)
	}
	if cacheRepo == nil {
		return usecase.NewAreaUseCase(dirs, store, cache.NewNoopCacheRepository(),
			usecase.NewRequestTracker(zap.NewNop()), zap.NewNop(), 15*time.Minute)
	}
	return usecase.NewAreaUseCase(dirs, store, cacheRepo,
		usecase.NewRequestTracker(zap.NewNop()), zap.NewNop(), 15*time.Minute)
}

func TestAreaUseCase_Analyze_WithPolygon(t *testing.T) {
	dirs := &MockDirectionsRepository{}
	uc := newAreaUseCase(dirs, nil, areaSnapshot())

	resp, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{
		Center:  dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon},
		Polygon: geojson.NewGeometry(squareAround(tbilisi, 500)),
	})
	require.NoError(t, err)
	report := resp.Report

	assert.Equal(t, 2, report.Accidents.Total)
	assert.Equal(t, 1, report.Accidents.Severe)
	assert.Equal(t, 1, report.Accidents.Light)
	assert.Equal(t, 2, report.KindergartenCount)
	require.NotNil(t, report.Schools)
	assert.Equal(t, 1, report.Schools.TotalSchools)
	assert.Empty(t, report.SchoolsMessage)
	assert.Empty(t, report.Mode)
	assert.NotNil(t, report.Polygon)

	dirs.AssertNotCalled(t, "GetIsochrone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAreaUseCase_Analyze_Isochrone(t *testing.T) {
	center := dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon}

	t.Run("fetches and caches isochrone", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		cacheRepo := &MockCacheRepository{}

		dirs.On("GetIsochrone", mock.Anything, tbilisi, domain.ModeWalking, usecase.DefaultIsochroneMinutes).
			Return(&domain.Isochrone{Mode: domain.ModeWalking, Minutes: 15, Geometry: squareAround(tbilisi, 500)}, nil)
		cacheRepo.On("Get", mock.Anything, "isochrone:walking:41.71510:44.82710:15").Return(nil, nil)
		cacheRepo.On("Set", mock.Anything, "isochrone:walking:41.71510:44.82710:15", mock.Anything, 15*time.Minute).Return(nil)

		uc := newAreaUseCase(dirs, cacheRepo, areaSnapshot())
		resp, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{SessionID: "s", Center: center})
		require.NoError(t, err)

		assert.Equal(t, domain.ModeWalking, resp.Report.Mode)
		assert.Equal(t, 15, resp.Report.Minutes)
		assert.Equal(t, 15, resp.Report.Polygon.Properties["contour"])
		assert.Equal(t, 2, resp.Report.Accidents.Total)
		dirs.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache hit skips mapbox", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		cacheRepo := &MockCacheRepository{}

		data, err := geojson.NewGeometry(squareAround(tbilisi, 500)).MarshalJSON()
		require.NoError(t, err)
		cacheRepo.On("Get", mock.Anything, "isochrone:cycling:41.71510:44.82710:10").Return(data, nil)

		uc := newAreaUseCase(dirs, cacheRepo, areaSnapshot())
		resp, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{Center: center, Mode: "cycling", Minutes: 10})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Report.KindergartenCount)
		dirs.AssertNotCalled(t, "GetIsochrone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream failure", func(t *testing.T) {
		dirs := &MockDirectionsRepository{}
		dirs.On("GetIsochrone", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrUpstreamUnavailable)

		uc := newAreaUseCase(dirs, nil, areaSnapshot())
		_, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{Center: center})
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})
}

func TestAreaUseCase_Analyze_EmptyArea(t *testing.T) {
	uc := newAreaUseCase(&MockDirectionsRepository{}, nil, nil)

	resp, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{
		Center:  dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon},
		Polygon: geojson.NewGeometry(squareAround(tbilisi, 100)),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Report.Accidents.Total)
	assert.Equal(t, "ავარიები არ მოიძებნა", resp.Report.Accidents.Message)
	assert.Nil(t, resp.Report.Schools)
	assert.Equal(t, "ამ არეალში სკოლები არ მოიძებნა", resp.Report.SchoolsMessage)
}

func TestAreaUseCase_Analyze_Validation(t *testing.T) {
	uc := newAreaUseCase(&MockDirectionsRepository{}, nil, nil)

	_, err := uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{
		Center:  dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon},
		Polygon: geojson.NewGeometry(tbilisi.Orb()),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	_, err = uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{
		Center: dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon},
		Mode:   "boat",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTravelMode)

	_, err = uc.Analyze(context.Background(), dto.AreaAnalyzeRequest{Center: dto.Point{Lat: 100, Lon: 0}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestAreaUseCase_NewerRequestSupersedesOlder(t *testing.T) {
	center := dto.Point{Lat: tbilisi.Lat, Lon: tbilisi.Lon}
	iso := &domain.Isochrone{Mode: domain.ModeWalking, Minutes: 15, Geometry: squareAround(tbilisi, 500)}

	tests := []struct {
		name string
		// blockFirst держит первый запрос к Mapbox до отпускания release
		blockFirst func(ctx context.Context, started, release chan struct{})
	}{
		{
			name: "upstream honours cancellation",
			blockFirst: func(ctx context.Context, started, _ chan struct{}) {
				close(started)
				<-ctx.Done()
			},
		},
		{
			name: "upstream ignores cancellation",
			blockFirst: func(_ context.Context, started, release chan struct{}) {
				close(started)
				<-release
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})

			dirs := &MockDirectionsRepository{}
			dirs.On("GetIsochrone", mock.Anything, tbilisi, domain.ModeWalking, usecase.DefaultIsochroneMinutes).
				Once().
				Run(func(args mock.Arguments) {
					tt.blockFirst(args.Get(0).(context.Context), started, release)
				}).
				Return(iso, nil)
			dirs.On("GetIsochrone", mock.Anything, tbilisi, domain.ModeWalking, usecase.DefaultIsochroneMinutes).
				Once().
				Return(iso, nil)

			uc := newAreaUseCase(dirs, nil, areaSnapshot())
			req := dto.AreaAnalyzeRequest{SessionID: "same", Center: center}

			firstErr := make(chan error, 1)
			go func() {
				_, err := uc.Analyze(context.Background(), req)
				firstErr <- err
			}()

			select {
			case <-started:
			case <-time.After(2 * time.Second):
				t.Fatal("first request did not reach mapbox")
			}

			resp, err := uc.Analyze(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 2, resp.Report.Accidents.Total)

			close(release)

			select {
			case err := <-firstErr:
				assert.ErrorIs(t, err, apperrors.ErrRequestSuperseded)
			case <-time.After(2 * time.Second):
				t.Fatal("first request did not finish")
			}
			dirs.AssertExpectations(t)
		})
	}
}
