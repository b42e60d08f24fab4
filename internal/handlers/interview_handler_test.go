package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/emails"
	"github.com/Priyan1011/remote-interview-platform/internal/handlers"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories/memory"
)

func newInterviewRouter(t *testing.T) (http.Handler, *memory.InterviewStore) {
	t.Helper()
	log := zap.NewNop()
	store := memory.NewInterviewStore()
	mailer := emails.NewMailerFromEnv(log)
	ih := handlers.NewInterviewHandler(store, mailer, log)
	ch := handlers.NewCommentHandler(store, mailer, log)

	r := chi.NewRouter()
	r.Route("/api/v1/interviews", func(r chi.Router) {
		r.Post("/", ih.Create)
		r.Get("/", ih.List)
		r.Get("/by-call/{callId}", ih.GetByStreamCall)
		r.Get("/{id}", ih.Get)
		r.Put("/{id}/status", ih.UpdateStatus)
		r.Put("/{id}/result", ih.UpdateResult)
		r.Post("/{id}/comments", ch.Add)
		r.Get("/{id}/comments", ch.List)
	})
	r.Get("/api/v1/candidates/{candidateId}/dashboard", ih.Dashboard)
	return r, store
}

func createInterview(t *testing.T, r http.Handler, payload map[string]any) models.Interview {
	t.Helper()
	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews", payload)
	require.Equal(t, http.StatusCreated, rr.Code)
	var iv models.Interview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &iv))
	return iv
}

func TestCreateInterviewStartsUpcoming(t *testing.T) {
	r, _ := newInterviewRouter(t)

	iv := createInterview(t, r, map[string]any{
		"title":        "Backend Round 1",
		"startTime":    time.Now().Add(time.Hour).UnixMilli(),
		"candidateId":  "cand-1",
		"streamCallId": "call-abc",
	})

	assert.NotEmpty(t, iv.ID)
	assert.Equal(t, models.InterviewUpcoming, iv.Status)
}

func TestCreateInterviewValidatesRequiredFields(t *testing.T) {
	r, _ := newInterviewRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews", map[string]any{
		"title": "missing candidate and start",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetByStreamCall(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c", "streamCallId": "call-xyz",
	})

	rr := doJSON(t, r, http.MethodGet, "/api/v1/interviews/by-call/call-xyz", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var iv models.Interview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &iv))
	assert.Equal(t, created.ID, iv.ID)
}

func TestUpdateStatusToCompletedSetsEndTime(t *testing.T) {
	r, store := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/status", map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusNoContent, rr.Code)

	iv, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, iv.Status)
	assert.NotZero(t, iv.EndTime)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/status", map[string]any{
		"status": "paused",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatusUnknownInterviewIs404(t *testing.T) {
	r, _ := newInterviewRouter(t)

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/ghost/status", map[string]any{
		"status": "live",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateResultMarksCompleted(t *testing.T) {
	r, store := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/result", map[string]any{
		"result": "passed",
	})
	require.Equal(t, http.StatusNoContent, rr.Code)

	iv, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResultPassed, iv.Result)
	assert.Equal(t, models.InterviewCompleted, iv.Status)
	assert.NotZero(t, iv.EndTime)
}

func TestUpdateResultRecordsOverallRating(t *testing.T) {
	r, store := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/result", map[string]any{
		"result":        "passed",
		"overallRating": 4,
	})
	require.Equal(t, http.StatusNoContent, rr.Code)

	iv, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, iv.OverallRating)
	assert.NotZero(t, iv.EndTime)
}

func TestUpdateResultRejectsOutOfRangeRating(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/result", map[string]any{
		"result":        "passed",
		"overallRating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateResultRejectsUnknownValue(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPut, "/api/v1/interviews/"+created.ID+"/result", map[string]any{
		"result": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListFiltersByCandidate(t *testing.T) {
	r, _ := newInterviewRouter(t)
	createInterview(t, r, map[string]any{"title": "a", "startTime": int64(1), "candidateId": "cand-1"})
	createInterview(t, r, map[string]any{"title": "b", "startTime": int64(2), "candidateId": "cand-2"})

	rr := doJSON(t, r, http.MethodGet, "/api/v1/interviews?candidateId=cand-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []models.Interview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "cand-1", list[0].CandidateID)
}

func TestAddCommentOncePerInterviewer(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "solid problem solving", "rating": 4,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "second thoughts", "rating": 3,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// a different interviewer may still comment
	rr = doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-2", "content": "agree", "rating": 5,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAddCommentValidatesRating(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})

	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "x", "rating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboardJoinsInterviewsWithComments(t *testing.T) {
	r, _ := newInterviewRouter(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "cand-1",
	})
	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "good", "rating": 4,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/api/v1/candidates/cand-1/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var dash []models.InterviewWithComments
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dash))
	require.Len(t, dash, 1)
	require.Len(t, dash[0].Comments, 1)
	assert.Equal(t, "good", dash[0].Comments[0].Content)
}

type sentMail struct {
	to, subject, body string
}

func newInterviewRouterWithMail(t *testing.T) (http.Handler, *memory.InterviewStore, *[]sentMail) {
	t.Helper()
	log := zap.NewNop()
	store := memory.NewInterviewStore()
	mailer := emails.NewMailerFromEnv(log)

	sent := &[]sentMail{}
	mailer.SetSendHook(func(to, subject, body string) {
		*sent = append(*sent, sentMail{to: to, subject: subject, body: body})
	})

	ih := handlers.NewInterviewHandler(store, mailer, log)
	ch := handlers.NewCommentHandler(store, mailer, log)

	r := chi.NewRouter()
	r.Route("/api/v1/interviews", func(r chi.Router) {
		r.Post("/", ih.Create)
		r.Put("/{id}/result", ih.UpdateResult)
		r.Post("/{id}/comments", ch.Add)
	})
	return r, store, sent
}

func feedbackMail(sent []sentMail) (sentMail, bool) {
	for _, m := range sent {
		if strings.HasPrefix(m.subject, "Interview Feedback:") {
			return m, true
		}
	}
	return sentMail{}, false
}

func TestAddCommentRecordsResultFromRating(t *testing.T) {
	r, store := newInterviewRouter(t)

	passing := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})
	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+passing.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "strong", "rating": 4,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	iv, err := store.GetByID(context.Background(), passing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResultPassed, iv.Result)
	assert.Equal(t, 4, iv.OverallRating)
	assert.Equal(t, models.InterviewCompleted, iv.Status)
	assert.NotZero(t, iv.EndTime)

	failing := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
	})
	rr = doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+failing.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "weak", "rating": 2,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	iv, err = store.GetByID(context.Background(), failing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ResultFailed, iv.Result)
	assert.Equal(t, 2, iv.OverallRating)
}

func TestAddCommentEmailReportsDerivedOutcome(t *testing.T) {
	r, _, sent := newInterviewRouterWithMail(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
		"candidateEmail": "cand@example.com",
	})

	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "strong", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	mail, ok := feedbackMail(*sent)
	require.True(t, ok, "expected a feedback email")
	assert.Equal(t, "cand@example.com", mail.to)
	assert.Contains(t, mail.body, "PASSED")
	assert.NotContains(t, mail.body, "NOT PASSED")
}

func TestAddCommentEmailReportsFailedOutcome(t *testing.T) {
	r, _, sent := newInterviewRouterWithMail(t)
	created := createInterview(t, r, map[string]any{
		"title": "t", "startTime": int64(1000), "candidateId": "c",
		"candidateEmail": "cand@example.com",
	})

	rr := doJSON(t, r, http.MethodPost, "/api/v1/interviews/"+created.ID+"/comments", map[string]any{
		"interviewerId": "int-1", "content": "weak", "rating": 1,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	mail, ok := feedbackMail(*sent)
	require.True(t, ok, "expected a feedback email")
	assert.Contains(t, mail.body, "NOT PASSED")
}
