package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем ответов внешних API
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
