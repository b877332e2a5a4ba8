package app_handler

import (
	"net/http"

	"github.com/trsv-dev/dpim-portal/internal/broadcast"
)

// AppHandler Структура для передачи общих зависимостей.
type AppHandler struct {
	Broadcaster  broadcast.Broadcaster
	JWTSecretKey string
}

// NewAppHandler Конструктор AppHandler.
func NewAppHandler(JWTSecretKey string, broadcaster broadcast.Broadcaster) *AppHandler {
	return &AppHandler{JWTSecretKey: JWTSecretKey, Broadcaster: broadcaster}
}

// Events SSE-поток снимков дашборда (GET /events?stream=dashboard).
// Тему подписки определяет TopicResolver брокера по токену запроса.
func (h *AppHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.Broadcaster.HTTPHandler().ServeHTTP(w, r)
}
