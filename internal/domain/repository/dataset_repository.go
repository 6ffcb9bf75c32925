package repository

import (
	"context"

	"github.com/urbanyx-service/internal/domain"
)

// DatasetSource загружает удалённые GeoJSON датасеты
type DatasetSource interface {
	FetchKindergartens(ctx context.Context) ([]domain.Kindergarten, error)
	FetchAccidents(ctx context.Context) ([]domain.AccidentRecord, error)
	FetchSchools(ctx context.Context) ([]domain.School, error)
}

// DatasetStore хранит последний загруженный снимок датасетов
type DatasetStore interface {
	// Snapshot возвращает текущий снимок или nil, если загрузок ещё не было
	Snapshot() *domain.DatasetSnapshot

	// Replace атомарно подменяет снимок целиком
	Replace(snapshot *domain.DatasetSnapshot)
}
