package handlers

import (
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

type CommentHandler struct {
	interviews InterviewStore
	mailer     *emails.Mailer
	log        *zap.Logger
}

func NewCommentHandler(interviews InterviewStore, mailer *emails.Mailer, log *zap.Logger) *CommentHandler {
	return &CommentHandler{interviews: interviews, mailer: mailer, log: log}
}

type addCommentRequest struct {
	InterviewerID string `json:"interviewerId"`
	Content       string `json:"content"`
	Rating        int    `json:"rating"`
}

// Add records one interviewer's feedback. Each interviewer gets a single
// comment per interview; a second attempt is rejected.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "id")

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	if req.InterviewerID == "" || req.Content == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "interviewerId and content are required",
		})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_rating",
			Message: "Rating must be between 1 and 5",
		})
		return
	}

	iv, err := h.interviews.GetByID(r.Context(), interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "not_found",
				Message: "Interview not found",
			})
			return
		}
		h.log.Error("failed to load interview", zap.String("interviewId", interviewID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load interview",
		})
		return
	}

	existing, err := h.interviews.CommentsByInterview(r.Context(), interviewID)
	if err != nil {
		h.log.Error("failed to load comments", zap.String("interviewId", interviewID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load comments",
		})
		return
	}
	for _, c := range existing {
		if c.InterviewerID == req.InterviewerID {
			utils.JSON(w, http.StatusConflict, models.ErrorResponse{
				Code:    "already_commented",
				Message: "Interviewer has already left feedback for this interview",
			})
			return
		}
	}

	comment := models.Comment{
		InterviewID:   interviewID,
		InterviewerID: req.InterviewerID,
		Content:       req.Content,
		Rating:        req.Rating,
	}
	if err := h.interviews.AddComment(r.Context(), &comment); err != nil {
		h.log.Error("failed to add comment", zap.String("interviewId", interviewID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to add comment",
		})
		return
	}

	// The rating decides the interview outcome: three and above passes.
	result := models.ResultFailed
	if req.Rating >= 3 {
		result = models.ResultPassed
	}
	if err := h.interviews.PatchInterview(r.Context(), interviewID, map[string]interface{}{
		"result":        result,
		"overallRating": req.Rating,
		"status":        models.InterviewCompleted,
		"endTime":       time.Now().UnixMilli(),
	}); err != nil {
		h.log.Warn("failed to record interview result", zap.String("interviewId", interviewID), zap.Error(err))
	}

	if iv.CandidateEmail != "" {
		if mailErr := h.mailer.SendFeedbackAdded(iv.CandidateEmail, emails.FeedbackData{
			CandidateName:  iv.CandidateName,
			InterviewTitle: iv.Title,
			Feedback:       req.Content,
			Passed:         result == models.ResultPassed,
		}); mailErr != nil {
			h.log.Warn("failed to send feedback email", zap.String("interviewId", interviewID), zap.Error(mailErr))
		}
	}

	utils.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "id")

	comments, err := h.interviews.CommentsByInterview(r.Context(), interviewID)
	if err != nil {
		h.log.Error("failed to list comments", zap.String("interviewId", interviewID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to list comments",
		})
		return
	}
	utils.JSON(w, http.StatusOK, comments)
}
