package usecase_test

import (
	"context"
	"math"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/urbanyx-service/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// MockDirectionsRepository is a mock of DirectionsRepository
type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) GetRoute(ctx context.Context, from, to domain.GeoPoint, mode domain.TravelMode) (*domain.Route, error) {
	args := m.Called(ctx, from, to, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockDirectionsRepository) GetIsochrone(ctx context.Context, center domain.GeoPoint, mode domain.TravelMode, minutes int) (*domain.Isochrone, error) {
	args := m.Called(ctx, center, mode, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Isochrone), args.Error(1)
}

// MockPlaygroundRepository is a mock of PlaygroundRepository
type MockPlaygroundRepository struct {
	mock.Mock
}

func (m *MockPlaygroundRepository) FindPlaygrounds(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.OSMElement, error) {
	args := m.Called(ctx, center, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OSMElement), args.Error(1)
}

// MockStreetImageryRepository is a mock of StreetImageryRepository
type MockStreetImageryRepository struct {
	mock.Mock
}

func (m *MockStreetImageryRepository) FindImages(ctx context.Context, bbox domain.BoundingBox) ([]domain.StreetImage, error) {
	args := m.Called(ctx, bbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreetImage), args.Error(1)
}

// MockDatasetSource is a mock of DatasetSource
type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) FetchKindergartens(ctx context.Context) ([]domain.Kindergarten, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Kindergarten), args.Error(1)
}

func (m *MockDatasetSource) FetchAccidents(ctx context.Context) ([]domain.AccidentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccidentRecord), args.Error(1)
}

func (m *MockDatasetSource) FetchSchools(ctx context.Context) ([]domain.School, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.School), args.Error(1)
}

var tbilisi = domain.GeoPoint{Lat: 41.7151, Lon: 44.8271}

// ~1 метр по широте
const metreLat = 1.0 / 111195

func offset(p domain.GeoPoint, northMeters, eastMeters float64) domain.GeoPoint {
	return domain.GeoPoint{
		Lat: p.Lat + northMeters*metreLat,
		Lon: p.Lon + eastMeters*metreLat/math.Cos(p.Lat*math.Pi/180),
	}
}
