package health_handler

import (
	"context"
	"net/http"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/storage"
)

// pingTimeout Время ожидания ответа хранилища.
const pingTimeout = 2 * time.Second

// HealthHandler Обрабатывает HTTP-запросы для проверки состояния сервиса.
type HealthHandler struct {
	storage storage.Storage
}

// NewHealthHandler Конструктор HealthHandler.
func NewHealthHandler(storage storage.Storage) *HealthHandler {
	return &HealthHandler{
		storage: storage,
	}
}

// GetHealth Возвращает HTTP 200, если хранилище доступно, иначе HTTP 503.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	pingCtx, pingCancel := context.WithTimeout(r.Context(), pingTimeout)
	defer pingCancel()

	if err := h.storage.Ping(pingCtx); err != nil {
		logger.Log.Error("Хранилище не отвечает", logger.String("error", err.Error()))

		http.Error(w, "Хранилище недоступно", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
