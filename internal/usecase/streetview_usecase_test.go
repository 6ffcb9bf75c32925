package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/repository/cache"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

func TestStreetViewUseCase_Select(t *testing.T) {
	ctx := context.Background()
	req := dto.StreetViewRequest{Lat: tbilisi.Lat, Lon: tbilisi.Lon}
	bbox := analysis.StreetViewBounds(tbilisi)

	t.Run("selects images by distance", func(t *testing.T) {
		repo := &MockStreetImageryRepository{}
		repo.On("FindImages", ctx, bbox).Return([]domain.StreetImage{
			{ID: "too-close", Location: offset(tbilisi, 10, 0)},
			{ID: "a", Location: offset(tbilisi, 52, 0)},
			{ID: "b", Location: offset(tbilisi, 0, 148)},
			{ID: "too-far", Location: offset(tbilisi, 290, 0)},
		}, nil)

		uc := usecase.NewStreetViewUseCase(repo, cache.NewNoopCacheRepository(), zap.NewNop(), time.Hour)
		resp, err := uc.Select(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Images, 2)
		assert.Equal(t, "a", resp.Images[0].ID)
		assert.Equal(t, 50, resp.Images[0].TargetDistance)
		assert.Equal(t, "b", resp.Images[1].ID)
		assert.Equal(t, "East", resp.Images[1].Direction)
		assert.Empty(t, resp.Message)
	})

	t.Run("upstream failure gives message", func(t *testing.T) {
		repo := &MockStreetImageryRepository{}
		repo.On("FindImages", ctx, mock.Anything).Return(nil, errors.New("mapillary down"))

		uc := usecase.NewStreetViewUseCase(repo, cache.NewNoopCacheRepository(), zap.NewNop(), time.Hour)
		resp, err := uc.Select(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Images)
		assert.Equal(t, "სამწუხაროდ, ვერ ვიპოვეთ ქუჩის ფოტოები ამ არეალში...", resp.Message)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		repo := &MockStreetImageryRepository{}
		repo.On("FindImages", cancelled, mock.Anything).Return(nil, context.Canceled)

		uc := usecase.NewStreetViewUseCase(repo, cache.NewNoopCacheRepository(), zap.NewNop(), time.Hour)
		_, err := uc.Select(cancelled, req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
