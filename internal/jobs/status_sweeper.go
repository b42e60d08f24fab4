// Package jobs holds background schedules.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// InterviewStore is the slice of the interview repository the sweeper needs.
type InterviewStore interface {
	ListByStatusDue(ctx context.Context, status string, dueBefore int64) ([]models.Interview, error)
	PatchInterview(ctx context.Context, id string, fields map[string]interface{}) error
}

// StatusSweeper flips upcoming interviews to live once their start time
// passes. Completion stays an explicit action by the interviewer.
type StatusSweeper struct {
	interviews InterviewStore
	log        *zap.Logger
	cron       *cron.Cron
	schedule   string
}

func NewStatusSweeper(interviews InterviewStore, log *zap.Logger) *StatusSweeper {
	return &StatusSweeper{
		interviews: interviews,
		log:        log,
		cron:       cron.New(),
		schedule:   "@every 1m",
	}
}

func (s *StatusSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("interview status sweeper started", zap.String("schedule", s.schedule))
	return nil
}

func (s *StatusSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep runs one pass and returns the number of interviews transitioned.
func (s *StatusSweeper) Sweep(ctx context.Context) int {
	due, err := s.interviews.ListByStatusDue(ctx, models.InterviewUpcoming, time.Now().UnixMilli())
	if err != nil {
		s.log.Error("sweep failed to list due interviews", zap.Error(err))
		return 0
	}
	flipped := 0
	for _, iv := range due {
		if err := s.interviews.PatchInterview(ctx, iv.ID, map[string]interface{}{
			"status": models.InterviewLive,
		}); err != nil {
			s.log.Error("sweep failed to mark interview live", zap.String("id", iv.ID), zap.Error(err))
			continue
		}
		flipped++
	}
	if flipped > 0 {
		s.log.Info("interviews marked live", zap.Int("count", flipped))
	}
	return flipped
}
