package dataset

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/usecase/dto"
	"github.com/urbanyx-service/internal/worker"
)

// Reloader - источник перезагрузки датасетов (DatasetUseCase)
type Reloader interface {
	Reload(ctx context.Context) (*dto.DatasetStatusResponse, error)
}

// RefreshWorker периодически перезагружает датасеты детсадов, ДТП и школ
type RefreshWorker struct {
	*worker.BaseWorker
	reloader Reloader
	interval time.Duration
	timeout  time.Duration
}

// NewRefreshWorker создает RefreshWorker. timeout ограничивает одну перезагрузку
func NewRefreshWorker(reloader Reloader, interval, timeout time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("dataset-refresh", logger),
		reloader:   reloader,
		interval:   interval,
		timeout:    timeout,
	}
}

// Start запускает цикл перезагрузки. Первая перезагрузка - через interval
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	if w.interval <= 0 {
		logger.Info("Dataset refresh disabled")
		return nil
	}

	logger.Info("Starting dataset refresh", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	status, err := w.reloader.Reload(ctx)
	if err != nil {
		w.Logger().Error("Dataset refresh failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}

	w.Logger().Info("Datasets refreshed",
		zap.Bool("ready", status.Ready),
		zap.Duration("duration", time.Since(start)))
}
