package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/jobs"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories/memory"
)

func TestSweepFlipsDueInterviewsToLive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInterviewStore()

	past := models.Interview{Title: "due", StartTime: time.Now().Add(-time.Minute).UnixMilli(), Status: models.InterviewUpcoming, CandidateID: "c"}
	future := models.Interview{Title: "later", StartTime: time.Now().Add(time.Hour).UnixMilli(), Status: models.InterviewUpcoming, CandidateID: "c"}
	done := models.Interview{Title: "done", StartTime: time.Now().Add(-2 * time.Hour).UnixMilli(), Status: models.InterviewCompleted, CandidateID: "c"}
	require.NoError(t, store.Create(ctx, &past))
	require.NoError(t, store.Create(ctx, &future))
	require.NoError(t, store.Create(ctx, &done))

	sweeper := jobs.NewStatusSweeper(store, zap.NewNop())
	flipped := sweeper.Sweep(ctx)
	assert.Equal(t, 1, flipped)

	got, err := store.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewLive, got.Status)

	got, err = store.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewUpcoming, got.Status, "future interviews stay upcoming")

	got, err = store.GetByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, got.Status, "completed interviews are never reopened")
}

func TestSweepIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInterviewStore()
	iv := models.Interview{Title: "due", StartTime: 1, Status: models.InterviewUpcoming, CandidateID: "c"}
	require.NoError(t, store.Create(ctx, &iv))

	sweeper := jobs.NewStatusSweeper(store, zap.NewNop())
	assert.Equal(t, 1, sweeper.Sweep(ctx))
	assert.Equal(t, 0, sweeper.Sweep(ctx), "second pass finds nothing due")
}
