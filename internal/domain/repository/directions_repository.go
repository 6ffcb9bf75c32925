package repository

import (
	"context"

	"github.com/urbanyx-service/internal/domain"
)

// DirectionsRepository определяет методы для работы с Mapbox API
type DirectionsRepository interface {
	// GetRoute возвращает маршрут с аннотациями maxspeed
	GetRoute(ctx context.Context, from, to domain.GeoPoint, mode domain.TravelMode) (*domain.Route, error)

	// GetIsochrone возвращает полигон достижимости за minutes минут
	GetIsochrone(ctx context.Context, center domain.GeoPoint, mode domain.TravelMode, minutes int) (*domain.Isochrone, error)
}
