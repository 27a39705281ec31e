package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// HandlePing обрабатывает запрос на проверку соединения с хранилищем
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckConnection(r.Context()); err != nil {
		h.logger.Error("Ошибка подключения к хранилищу", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, msgStorageConnFail)
		return
	}

	w.WriteHeader(http.StatusOK)
}
