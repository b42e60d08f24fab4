package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/execution"
	"github.com/Priyan1011/remote-interview-platform/internal/metrics"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/piston"
	"github.com/Priyan1011/remote-interview-platform/internal/utils"
)

type ExecutionHandler struct {
	gateway execution.Gateway
	svc     *execution.Service
	log     *zap.Logger
}

func NewExecutionHandler(gateway execution.Gateway, svc *execution.Service, log *zap.Logger) *ExecutionHandler {
	return &ExecutionHandler{gateway: gateway, svc: svc, log: log}
}

// Execute is the stateless proxy endpoint: normalize and return, no
// persistence. The body is always the fixed result contract; only the HTTP
// status varies with the failure class.
func (h *ExecutionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	start := time.Now()
	res, err := h.gateway.Execute(r.Context(), req)
	res.Time = time.Since(start).Milliseconds()
	utils.JSON(w, statusForExecuteError(err), res)
}

type runRequest struct {
	Code     string          `json:"code"`
	Language models.Language `json:"language"`
	Input    string          `json:"input,omitempty"`
	UserID   string          `json:"userId"`
}

// Run executes against a session and appends the attempt to its history.
func (h *ExecutionHandler) Run(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_request",
			Message: "Invalid request payload",
		})
		return
	}

	res, err := h.svc.Run(r.Context(), sessionID, req.UserID, models.ExecuteRequest{
		Code:     req.Code,
		Language: req.Language,
		Input:    req.Input,
	})
	metrics.ExecutionAttempts.WithLabelValues(string(req.Language), res.Status).Inc()

	if err != nil && !errors.Is(err, piston.ErrUnsupportedLanguage) && !errors.Is(err, piston.ErrUpstream) {
		// History store failure: the run outcome is unknown to the record,
		// so surface a generic failure instead of the result body.
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to record execution",
		})
		return
	}
	utils.JSON(w, statusForExecuteError(err), res)
}

// History returns the bounded most-recent-first run list for a session.
func (h *ExecutionHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	history, err := h.svc.History(r.Context(), sessionID)
	if err != nil {
		h.log.Error("failed to fetch execution history", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch execution history",
		})
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

// statusForExecuteError maps the gateway's error classification onto the
// wire contract: 400 only for an unrecognized language, 500 for transport
// faults, 200 otherwise (including failed executions).
func statusForExecuteError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, piston.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
