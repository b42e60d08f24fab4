// Package execution ties the gateway to the run history: every attempt is
// timed, normalized, and recorded, whether it finished or failed.
package execution

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// HistoryLimit caps the read side of the run history. Storage itself is
// unbounded; only the query is.
const HistoryLimit = 10

type Gateway interface {
	Execute(ctx context.Context, req models.ExecuteRequest) (models.ExecuteResult, error)
}

type HistoryStore interface {
	Insert(ctx context.Context, exec *models.Execution) error
	RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.Execution, error)
}

type Service struct {
	gateway Gateway
	history HistoryStore
	log     *zap.Logger
	now     func() time.Time
}

func NewService(gateway Gateway, history HistoryStore, log *zap.Logger) *Service {
	return &Service{gateway: gateway, history: history, log: log, now: time.Now}
}

// Run executes one attempt for a session and appends the outcome to the
// history. Wall-clock time is measured here, from dispatch to response; the
// remote service does not report it. All terminal states are recorded, and
// no attempt is ever retried automatically.
//
// The returned error is the gateway's classification (unsupported language,
// upstream fault) or the history store failure; the result is always a
// normalized body the caller can display.
func (s *Service) Run(ctx context.Context, sessionID, userID string, req models.ExecuteRequest) (models.ExecuteResult, error) {
	start := s.now()
	res, execErr := s.gateway.Execute(ctx, req)
	res.Time = time.Since(start).Milliseconds()

	rec := models.Execution{
		SessionID:     sessionID,
		UserID:        userID,
		Code:          req.Code,
		Language:      req.Language,
		Input:         req.Input,
		Output:        res.Output,
		Error:         res.Error,
		Status:        res.Status,
		ExecutionTime: res.Time,
		Memory:        res.Memory,
		CreatedAt:     s.now().UnixMilli(),
	}
	if err := s.history.Insert(ctx, &rec); err != nil {
		s.log.Error("failed to record execution", zap.String("sessionId", sessionID), zap.Error(err))
		return res, err
	}

	if execErr != nil {
		s.log.Warn("execution attempt did not finish",
			zap.String("sessionId", sessionID),
			zap.String("status", res.Status),
			zap.Error(execErr))
	}
	return res, execErr
}

// History returns the bounded most-recent-first run list for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]models.Execution, error) {
	return s.history.RecentBySession(ctx, sessionID, HistoryLimit)
}
