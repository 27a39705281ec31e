package handler

import (
	"net/http"
	"strconv"

	"github.com/InQaaaaGit/logogen.git/internal/middleware"
	"github.com/InQaaaaGit/logogen.git/internal/models"
	"go.uber.org/zap"
)

// HandleEditLogo обрабатывает POST /logos/edit
func (h *Handler) HandleEditLogo(w http.ResponseWriter, r *http.Request) {
	var opts models.EditOptions
	if !h.decodeJSON(w, r, &opts) {
		return
	}

	result, err := h.service.EditLogo(r.Context(), middleware.UserIDFromContext(r.Context()), opts)
	if err != nil {
		h.writeServiceError(w, r, err, msgEditError)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleDownload обрабатывает POST /logos/download и отдает байты изображения вложением
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	var req models.DownloadRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	download, err := h.service.DownloadLogo(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, msgDownloadError)
		return
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+download.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(download.Data); err != nil {
		h.logger.Error("Error writing download response", zap.Error(err))
	}
}
