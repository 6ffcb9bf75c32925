package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Каналы last-request-wins: маршрут и зона достижимости отслеживаются независимо
const (
	ChannelRoute = "route"
	ChannelArea  = "area"
)

type activeRequest struct {
	id     string
	cancel context.CancelFunc
}

// RequestTracker выдаёт токен на каждый запрос сессии и отменяет предыдущий
// запрос того же канала. Результаты под устаревшим токеном отбрасываются.
type RequestTracker struct {
	mu     sync.Mutex
	active map[string]activeRequest
	logger *zap.Logger
}

func NewRequestTracker(logger *zap.Logger) *RequestTracker {
	return &RequestTracker{
		active: make(map[string]activeRequest),
		logger: logger,
	}
}

// RequestToken - токен одного запроса
type RequestToken struct {
	ID      string
	key     string
	tracker *RequestTracker
	cancel  context.CancelFunc
}

// Begin регистрирует новый запрос и отменяет контекст предыдущего на том же канале.
// Пустой sessionID - запрос не отслеживается и всегда считается актуальным.
func (t *RequestTracker) Begin(ctx context.Context, sessionID, channel string) (context.Context, *RequestToken) {
	ctx, cancel := context.WithCancel(ctx)
	token := &RequestToken{
		ID:     uuid.NewString(),
		cancel: cancel,
	}
	if sessionID == "" {
		return ctx, token
	}

	token.key = sessionID + "/" + channel
	token.tracker = t

	t.mu.Lock()
	prev, ok := t.active[token.key]
	t.active[token.key] = activeRequest{id: token.ID, cancel: cancel}
	t.mu.Unlock()

	if ok {
		prev.cancel()
		t.logger.Debug("Previous request superseded",
			zap.String("session_id", sessionID),
			zap.String("channel", channel),
			zap.String("previous", prev.id),
			zap.String("current", token.ID))
	}

	return ctx, token
}

// Current - токен всё ещё последний на своём канале
func (tok *RequestToken) Current() bool {
	if tok.tracker == nil {
		return true
	}
	tok.tracker.mu.Lock()
	defer tok.tracker.mu.Unlock()
	active, ok := tok.tracker.active[tok.key]
	return ok && active.id == tok.ID
}

// Done освобождает контекст запроса и снимает регистрацию, если токен ещё актуален
func (tok *RequestToken) Done() {
	tok.cancel()
	if tok.tracker == nil {
		return
	}
	tok.tracker.mu.Lock()
	defer tok.tracker.mu.Unlock()
	if active, ok := tok.tracker.active[tok.key]; ok && active.id == tok.ID {
		delete(tok.tracker.active, tok.key)
	}
}

// Active - число отслеживаемых запросов в полёте
func (t *RequestTracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}
