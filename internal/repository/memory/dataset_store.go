package memory

import (
	"sync/atomic"

	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
)

// datasetStore держит снимок датасетов в памяти процесса.
// Читатели получают снимок целиком и не видят частично обновлённых данных.
type datasetStore struct {
	current atomic.Pointer[domain.DatasetSnapshot]
}

// NewDatasetStore создает пустое хранилище датасетов
func NewDatasetStore() repository.DatasetStore {
	return &datasetStore{}
}

func (s *datasetStore) Snapshot() *domain.DatasetSnapshot {
	return s.current.Load()
}

func (s *datasetStore) Replace(snapshot *domain.DatasetSnapshot) {
	s.current.Store(snapshot)
}
