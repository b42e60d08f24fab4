package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/questions"
	"github.com/Priyan1011/remote-interview-platform/internal/utils"
)

type QuestionHandler struct {
	bank *questions.Bank
}

func NewQuestionHandler(bank *questions.Bank) *QuestionHandler {
	return &QuestionHandler{bank: bank}
}

func (h *QuestionHandler) List(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, h.bank.List())
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, ok := h.bank.Get(chi.URLParam(r, "id"))
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Question not found",
		})
		return
	}
	utils.JSON(w, http.StatusOK, q)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
