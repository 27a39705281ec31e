package handler

import (
	"errors"
	"net/http"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/InQaaaaGit/logogen.git/internal/service"
	"go.uber.org/zap"
)

// HandleGenerate обрабатывает POST /logos/generate.
// Сессия не обязательна; при сбое генератора клиент все равно получает 200 с заглушками.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	h.logger.Info("Generating logos",
		zap.String("business_name", req.BusinessName),
		zap.String("niche", req.Niche))

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.writeServiceError(w, r, err, msgGenerateError)
			return
		}
		h.logger.Error("Error generating logos", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: msgGenerateError,
			Error:   err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
