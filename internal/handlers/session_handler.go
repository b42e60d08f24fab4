package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	"github.com/Priyan1011/remote-interview-platform/internal/utils"
)

// Notifier fans a freshly written record out to connected peers.
type Notifier interface {
	Notify(ctx context.Context, rec models.CodeSession)
}

type SessionHandler struct {
	store  *repositories.SessionStore
	notify Notifier
	log    *zap.Logger
}

func NewSessionHandler(store *repositories.SessionStore, notify Notifier, log *zap.Logger) *SessionHandler {
	return &SessionHandler{store: store, notify: notify, log: log}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	rec, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "not_found",
				Message: "Session not found",
			})
			return
		}
		h.log.Error("failed to load session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to load session",
		})
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}

type putCodeRequest struct {
	Code       string          `json:"code"`
	Language   models.Language `json:"language"`
	QuestionID string          `json:"questionId"`
	UserID     string          `json:"userId"`
}

func (h *SessionHandler) PutCode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req putCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	if !req.Language.Valid() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_language",
			Message: "Unsupported language: " + string(req.Language),
		})
		return
	}

	if err := h.store.UpsertCode(r.Context(), sessionID, req.Code, req.Language, req.QuestionID, req.UserID); err != nil {
		h.log.Error("failed to save code", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to save code",
		})
		return
	}
	h.notifyCurrent(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

type putLanguageRequest struct {
	Language models.Language `json:"language"`
	UserID   string          `json:"userId"`
}

func (h *SessionHandler) PutLanguage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req putLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}
	if !req.Language.Valid() {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_language",
			Message: "Unsupported language: " + string(req.Language),
		})
		return
	}

	if err := h.store.UpsertLanguage(r.Context(), sessionID, req.Language, req.UserID); err != nil {
		h.log.Error("failed to save language", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to save language",
		})
		return
	}
	h.notifyCurrent(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

type putQuestionRequest struct {
	QuestionID string `json:"questionId"`
	Code       string `json:"code"`
	UserID     string `json:"userId"`
}

func (h *SessionHandler) PutQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req putQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	if err := h.store.UpsertQuestion(r.Context(), sessionID, req.QuestionID, req.Code, req.UserID); err != nil {
		h.log.Error("failed to save question", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to save question",
		})
		return
	}
	h.notifyCurrent(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// notifyCurrent re-reads the record so the broadcast carries authoritative
// state rather than the caller's payload. A no-op upsert on a missing
// session leaves nothing to deliver.
func (h *SessionHandler) notifyCurrent(ctx context.Context, sessionID string) {
	if h.notify == nil {
		return
	}
	rec, err := h.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repositories.ErrSessionNotFound) {
			h.log.Warn("skipping session broadcast", zap.String("sessionId", sessionID), zap.Error(err))
		}
		return
	}
	h.notify.Notify(ctx, *rec)
}
