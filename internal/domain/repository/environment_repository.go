package repository

import (
	"context"

	"github.com/urbanyx-service/internal/domain"
)

// PlaygroundRepository ищет площадки и парки в OpenStreetMap
type PlaygroundRepository interface {
	FindPlaygrounds(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.OSMElement, error)
}

// StreetImageryRepository ищет уличные снимки в прямоугольнике
type StreetImageryRepository interface {
	FindImages(ctx context.Context, bbox domain.BoundingBox) ([]domain.StreetImage, error)
}
