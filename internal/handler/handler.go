package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/InQaaaaGit/logogen.git/internal/middleware"
	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/InQaaaaGit/logogen.git/internal/service"
	"github.com/InQaaaaGit/logogen.git/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"

	msgUnauthorized    = "Unauthorized"
	msgInvalidBody     = "Invalid request body"
	msgInvalidLogoID   = "Invalid logo ID"
	msgLogoNotFound    = "Logo not found"
	msgLogoDeleted     = "Logo deleted"
	msgLogoSaved       = "Logo saved successfully"
	msgLogoUpdated     = "Logo updated successfully"
	msgFetchError      = "Error fetching logos"
	msgSaveError       = "Error saving logo"
	msgUpdateError     = "Error updating logo"
	msgDeleteError     = "Error deleting logo"
	msgGenerateError   = "Error generating logos"
	msgEditError       = "Error editing logo"
	msgDownloadError   = "Error downloading logo"
	msgStorageConnFail = "Storage connection error"
)

// Handler обслуживает HTTP API логотипов
type Handler struct {
	service service.Service
	logger  *zap.Logger
}

func NewHandler(svc service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger,
	}
}

// errorResponse - тело ответа 500 для генерации, с текстом причины
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, models.MessageResponse{Message: msg})
}

// decodeJSON читает тело запроса; при ошибке уже отвечает 400
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Debug("Invalid request body", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// fallback отдается клиенту для неклассифицированных ошибок.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.writeMessage(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		h.writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, storage.ErrLogoNotFound):
		h.writeMessage(w, http.StatusNotFound, msgLogoNotFound)
	default:
		h.logger.Error(fallback,
			zap.String("path", r.URL.Path),
			zap.String("user_id", middleware.UserIDFromContext(r.Context())),
			zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, fallback)
	}
}

// logoID разбирает параметр {id}; при ошибке уже отвечает 400
func (h *Handler) logoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeMessage(w, http.StatusBadRequest, msgInvalidLogoID)
		return 0, false
	}
	return id, true
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}
