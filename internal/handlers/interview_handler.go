package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/emails"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	"github.com/Priyan1011/remote-interview-platform/internal/utils"
)

// InterviewStore is what the interview endpoints need from the document
// store. Satisfied by the mongo repo and the in-memory store used in tests.
type InterviewStore interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	GetByStreamCallID(ctx context.Context, callID string) (*models.Interview, error)
	List(ctx context.Context) ([]models.Interview, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]models.Interview, error)
	PatchInterview(ctx context.Context, id string, fields map[string]interface{}) error
	AddComment(ctx context.Context, comment *models.Comment) error
	CommentsByInterview(ctx context.Context, interviewID string) ([]models.Comment, error)
}

type InterviewHandler struct {
	interviews InterviewStore
	mailer     *emails.Mailer
	log        *zap.Logger
}

func NewInterviewHandler(interviews InterviewStore, mailer *emails.Mailer, log *zap.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, mailer: mailer, log: log}
}

type createInterviewRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	StartTime      int64    `json:"startTime"`
	StreamCallID   string   `json:"streamCallId"`
	CandidateID    string   `json:"candidateId"`
	CandidateEmail string   `json:"candidateEmail"`
	CandidateName  string   `json:"candidateName"`
	InterviewerIDs []string `json:"interviewerIds"`
}

func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	if req.Title == "" || req.CandidateID == "" || req.StartTime == 0 {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "title, candidateId and startTime are required",
		})
		return
	}

	iv := models.Interview{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		Status:         models.InterviewUpcoming,
		StreamCallID:   req.StreamCallID,
		CandidateID:    req.CandidateID,
		CandidateEmail: req.CandidateEmail,
		CandidateName:  req.CandidateName,
		InterviewerIDs: req.InterviewerIDs,
	}
	if err := h.interviews.Create(r.Context(), &iv); err != nil {
		h.log.Error("failed to create interview", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to create interview",
		})
		return
	}

	if iv.CandidateEmail != "" {
		start := time.UnixMilli(iv.StartTime)
		if err := h.mailer.SendInterviewScheduled(iv.CandidateEmail, emails.ScheduledData{
			CandidateName:  iv.CandidateName,
			InterviewTitle: iv.Title,
			InterviewDate:  start.Format("Monday, January 2, 2006"),
			InterviewTime:  start.Format("3:04 PM MST"),
			MeetingLink:    iv.StreamCallID,
		}); err != nil {
			h.log.Warn("failed to send scheduling email", zap.String("interviewId", iv.ID), zap.Error(err))
		}
	}

	utils.JSON(w, http.StatusCreated, iv)
}

func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	if candidateID := r.URL.Query().Get("candidateId"); candidateID != "" {
		list, err := h.interviews.ListByCandidate(r.Context(), candidateID)
		h.respondList(w, list, err)
		return
	}
	list, err := h.interviews.List(r.Context())
	h.respondList(w, list, err)
}

func (h *InterviewHandler) respondList(w http.ResponseWriter, list []models.Interview, err error) {
	if err != nil {
		h.log.Error("failed to list interviews", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to list interviews",
		})
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	iv, err := h.interviews.GetByID(r.Context(), chi.URLParam(r, "id"))
	h.respondOne(w, iv, err)
}

// GetByStreamCall resolves an interview from its video call id, the lookup
// the meeting page uses.
func (h *InterviewHandler) GetByStreamCall(w http.ResponseWriter, r *http.Request) {
	iv, err := h.interviews.GetByStreamCallID(r.Context(), chi.URLParam(r, "callId"))
	h.respondOne(w, iv, err)
}

func (h *InterviewHandler) respondOne(w http.ResponseWriter, iv *models.Interview, err error) {
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "not_found",
				Message: "Interview not found",
			})
			return
		}
		h.log.Error("failed to load interview", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load interview",
		})
		return
	}
	utils.JSON(w, http.StatusOK, iv)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *InterviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	switch req.Status {
	case models.InterviewUpcoming, models.InterviewLive, models.InterviewCompleted:
	default:
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_status",
			Message: "Unknown interview status: " + req.Status,
		})
		return
	}

	fields := map[string]interface{}{"status": req.Status}
	if req.Status == models.InterviewCompleted {
		fields["endTime"] = time.Now().UnixMilli()
	}
	if err := h.interviews.PatchInterview(r.Context(), id, fields); err != nil {
		h.patchError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateResultRequest struct {
	Result        string `json:"result"`
	OverallRating int    `json:"overallRating,omitempty"`
}

// UpdateResult records pass/fail with an optional overall rating and
// notifies the candidate by email.
func (h *InterviewHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	if req.Result != models.ResultPassed && req.Result != models.ResultFailed {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_result",
			Message: "Result must be passed or failed",
		})
		return
	}
	if req.OverallRating != 0 && (req.OverallRating < 1 || req.OverallRating > 5) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_rating",
			Message: "Rating must be between 1 and 5",
		})
		return
	}

	fields := map[string]interface{}{
		"result":  req.Result,
		"status":  models.InterviewCompleted,
		"endTime": time.Now().UnixMilli(),
	}
	if req.OverallRating != 0 {
		fields["overallRating"] = req.OverallRating
	}
	if err := h.interviews.PatchInterview(r.Context(), id, fields); err != nil {
		h.patchError(w, id, err)
		return
	}

	iv, err := h.interviews.GetByID(r.Context(), id)
	if err == nil && iv.CandidateEmail != "" {
		if mailErr := h.mailer.SendInterviewResult(iv.CandidateEmail, emails.ResultData{
			CandidateName:  iv.CandidateName,
			InterviewTitle: iv.Title,
			Rating:         iv.OverallRating,
			Passed:         req.Result == models.ResultPassed,
		}); mailErr != nil {
			h.log.Warn("failed to send result email", zap.String("interviewId", id), zap.Error(mailErr))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard returns a candidate's interviews joined with their feedback.
func (h *InterviewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	candidateID := chi.URLParam(r, "candidateId")

	list, err := h.interviews.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		h.log.Error("failed to load dashboard", zap.String("candidateId", candidateID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load dashboard",
		})
		return
	}

	out := make([]models.InterviewWithComments, 0, len(list))
	for _, iv := range list {
		comments, err := h.interviews.CommentsByInterview(r.Context(), iv.ID)
		if err != nil {
			h.log.Warn("failed to load comments", zap.String("interviewId", iv.ID), zap.Error(err))
			comments = nil
		}
		out = append(out, models.InterviewWithComments{Interview: iv, Comments: comments})
	}
	utils.JSON(w, http.StatusOK, out)
}

func (h *InterviewHandler) patchError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, repositories.ErrInterviewNotFound) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
		return
	}
	h.log.Error("failed to update interview", zap.String("interviewId", id), zap.Error(err))
	utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    "internal_error",
		Message: "Failed to update interview",
	})
}
