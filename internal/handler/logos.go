package handler

import (
	"net/http"

	"github.com/InQaaaaGit/logogen.git/internal/middleware"
	"github.com/InQaaaaGit/logogen.git/internal/models"
)

// HandleListLogos обрабатывает GET /logos
func (h *Handler) HandleListLogos(w http.ResponseWriter, r *http.Request) {
	logos, err := h.service.ListLogos(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err, msgFetchError)
		return
	}
	if logos == nil {
		logos = []models.Logo{}
	}
	h.writeJSON(w, http.StatusOK, logos)
}

// HandleGetLogo обрабатывает GET /logos/{id}
func (h *Handler) HandleGetLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.logoID(w, r)
	if !ok {
		return
	}

	logo, err := h.service.GetLogo(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.writeServiceError(w, r, err, msgFetchError)
		return
	}
	h.writeJSON(w, http.StatusOK, logo)
}

// HandleDeleteLogo обрабатывает DELETE /logos/{id}
func (h *Handler) HandleDeleteLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.logoID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLogo(r.Context(), middleware.UserIDFromContext(r.Context()), id); err != nil {
		h.writeServiceError(w, r, err, msgDeleteError)
		return
	}
	h.writeMessage(w, http.StatusOK, msgLogoDeleted)
}

// HandleSaveLogo обрабатывает POST /logos/save
func (h *Handler) HandleSaveLogo(w http.ResponseWriter, r *http.Request) {
	var req models.SaveLogoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.SaveLogo(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.writeServiceError(w, r, err, msgSaveError)
		return
	}

	h.writeJSON(w, http.StatusCreated, models.SaveLogoResponse{
		Message: msgLogoSaved,
		LogoID:  id,
	})
}

// HandleSaveEdited обрабатывает POST /logos/save-edited
func (h *Handler) HandleSaveEdited(w http.ResponseWriter, r *http.Request) {
	var req models.SaveEditedRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SaveEditedLogo(r.Context(), middleware.UserIDFromContext(r.Context()), req); err != nil {
		h.writeServiceError(w, r, err, msgUpdateError)
		return
	}
	h.writeMessage(w, http.StatusOK, msgLogoUpdated)
}
