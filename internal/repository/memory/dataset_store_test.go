package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanyx-service/internal/domain"
)

func TestDatasetStore(t *testing.T) {
	store := NewDatasetStore()

	t.Run("empty store", func(t *testing.T) {
		snapshot := store.Snapshot()
		assert.Nil(t, snapshot)
		assert.False(t, snapshot.Loaded(domain.DatasetAccidents))
		assert.Equal(t, 0, snapshot.Count(domain.DatasetAccidents))
	})

	t.Run("replace swaps whole snapshot", func(t *testing.T) {
		first := &domain.DatasetSnapshot{
			Accidents: []domain.AccidentRecord{{ID: "1"}},
			LoadedAt:  map[domain.DatasetKind]time.Time{domain.DatasetAccidents: time.Now()},
		}
		store.Replace(first)

		held := store.Snapshot()
		require.NotNil(t, held)
		assert.True(t, held.Loaded(domain.DatasetAccidents))
		assert.False(t, held.Loaded(domain.DatasetSchools))

		second := &domain.DatasetSnapshot{
			Accidents: []domain.AccidentRecord{{ID: "1"}, {ID: "2"}},
			LoadedAt:  map[domain.DatasetKind]time.Time{domain.DatasetAccidents: time.Now()},
		}
		store.Replace(second)

		assert.Equal(t, 1, held.Count(domain.DatasetAccidents))
		assert.Equal(t, 2, store.Snapshot().Count(domain.DatasetAccidents))
	})
}

func TestDatasetStore_ConcurrentAccess(t *testing.T) {
	store := NewDatasetStore()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			records := make([]domain.AccidentRecord, n)
			store.Replace(&domain.DatasetSnapshot{Accidents: records})
		}(i)
		go func() {
			defer wg.Done()
			if s := store.Snapshot(); s != nil {
				assert.Equal(t, len(s.Accidents), s.Count(domain.DatasetAccidents))
			}
		}()
	}
	wg.Wait()

	assert.NotNil(t, store.Snapshot())
}
