package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/domain/repository"
	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/usecase/dto"
)

const (
	defaultKindergartenLimit = 50
	maxKindergartenLimit     = 500
)

// DatasetUseCase - загрузка датасетов в хранилище и чтение из него
type DatasetUseCase struct {
	source repository.DatasetSource
	store  repository.DatasetStore
	logger *zap.Logger

	// reloadMu сериализует перезагрузки; чтение снимка идёт без блокировок
	reloadMu   sync.Mutex
	errMu      sync.RWMutex
	lastErrors map[domain.DatasetKind]string
}

// NewDatasetUseCase - создание нового DatasetUseCase
func NewDatasetUseCase(
	source repository.DatasetSource,
	store repository.DatasetStore,
	logger *zap.Logger,
) *DatasetUseCase {
	return &DatasetUseCase{
		source:     source,
		store:      store,
		logger:     logger,
		lastErrors: make(map[domain.DatasetKind]string),
	}
}

// Reload параллельно загружает три датасета. Неудачный датасет сохраняет
// прежнее содержимое; ошибка возвращается, только если не загрузился ни один.
func (uc *DatasetUseCase) Reload(ctx context.Context) (*dto.DatasetStatusResponse, error) {
	uc.reloadMu.Lock()
	defer uc.reloadMu.Unlock()

	start := time.Now()

	var (
		kindergartens []domain.Kindergarten
		accidents     []domain.AccidentRecord
		schools       []domain.School
		errs          [3]error
	)

	var g errgroup.Group
	g.Go(func() error {
		kindergartens, errs[0] = uc.source.FetchKindergartens(ctx)
		return nil
	})
	g.Go(func() error {
		accidents, errs[1] = uc.source.FetchAccidents(ctx)
		return nil
	})
	g.Go(func() error {
		schools, errs[2] = uc.source.FetchSchools(ctx)
		return nil
	})
	_ = g.Wait()

	prev := uc.store.Snapshot()
	next := &domain.DatasetSnapshot{LoadedAt: make(map[domain.DatasetKind]time.Time)}
	if prev != nil {
		next.Kindergartens = prev.Kindergartens
		next.Accidents = prev.Accidents
		next.Schools = prev.Schools
		for k, v := range prev.LoadedAt {
			next.LoadedAt[k] = v
		}
	}

	now := time.Now()
	if errs[0] == nil {
		next.Kindergartens = kindergartens
		next.LoadedAt[domain.DatasetKindergartens] = now
	}
	if errs[1] == nil {
		next.Accidents = accidents
		next.LoadedAt[domain.DatasetAccidents] = now
	}
	if errs[2] == nil {
		next.Schools = schools
		next.LoadedAt[domain.DatasetSchools] = now
	}
	uc.store.Replace(next)

	failed := make([]error, 0, len(errs))
	uc.errMu.Lock()
	for i, kind := range domain.DatasetKinds {
		if errs[i] != nil {
			uc.lastErrors[kind] = errs[i].Error()
			failed = append(failed, fmt.Errorf("%s: %w", kind, errs[i]))
			uc.logger.Error("Failed to load dataset, keeping previous contents",
				zap.String("kind", string(kind)),
				zap.Int("kept", prev.Count(kind)),
				zap.Error(errs[i]))
			continue
		}
		delete(uc.lastErrors, kind)
	}
	uc.errMu.Unlock()

	uc.logger.Info("Datasets reloaded",
		zap.Int("kindergartens", len(next.Kindergartens)),
		zap.Int("accidents", len(next.Accidents)),
		zap.Int("schools", len(next.Schools)),
		zap.Int("failed", len(failed)),
		zap.Duration("duration", time.Since(start)))

	if len(failed) == len(errs) {
		return uc.Status(), errors.Join(failed...)
	}
	return uc.Status(), nil
}

// Status - состояние датасетов в хранилище
func (uc *DatasetUseCase) Status() *dto.DatasetStatusResponse {
	snapshot := uc.store.Snapshot()

	uc.errMu.RLock()
	defer uc.errMu.RUnlock()

	resp := &dto.DatasetStatusResponse{
		Ready:    true,
		Datasets: make([]domain.DatasetStatus, 0, len(domain.DatasetKinds)),
	}
	for _, kind := range domain.DatasetKinds {
		status := domain.DatasetStatus{
			Kind:      kind,
			Loaded:    snapshot.Loaded(kind),
			Count:     snapshot.Count(kind),
			LastError: uc.lastErrors[kind],
		}
		if status.Loaded {
			loadedAt := snapshot.LoadedAt[kind]
			status.LoadedAt = &loadedAt
		} else {
			resp.Ready = false
		}
		resp.Datasets = append(resp.Datasets, status)
	}
	return resp
}

// ListKindergartens - детсады из датасета с фильтром по подстроке названия
func (uc *DatasetUseCase) ListKindergartens(ctx context.Context, req dto.KindergartenListRequest) (*dto.KindergartenListResponse, error) {
	snapshot := uc.store.Snapshot()
	if !snapshot.Loaded(domain.DatasetKindergartens) {
		return nil, apperrors.ErrDatasetNotLoaded.WithDetails(map[string]interface{}{
			"dataset": string(domain.DatasetKindergartens),
		})
	}

	if req.Limit <= 0 {
		req.Limit = defaultKindergartenLimit
	}
	if req.Limit > maxKindergartenLimit {
		req.Limit = maxKindergartenLimit
	}
	query := strings.ToLower(strings.TrimSpace(req.Query))

	result := make([]dto.KindergartenResponse, 0)
	for _, k := range snapshot.Kindergartens {
		if query != "" && !strings.Contains(strings.ToLower(k.Name), query) {
			continue
		}
		result = append(result, dto.KindergartenResponse{
			ID:       k.ID,
			Name:     k.Name,
			Location: k.Location,
		})
		if len(result) >= req.Limit {
			break
		}
	}

	return &dto.KindergartenListResponse{
		Kindergartens: result,
		Total:         len(result),
	}, nil
}

// Ready - все три датасета загружены хотя бы раз
func (uc *DatasetUseCase) Ready() bool {
	snapshot := uc.store.Snapshot()
	for _, kind := range domain.DatasetKinds {
		if !snapshot.Loaded(kind) {
			return false
		}
	}
	return true
}
