package middleware

import (
	"net/http"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/contextkeys"
	"github.com/trsv-dev/dpim-portal/internal/logger"
)

// RequireAuthMiddleware Проверяет наличие логина и ключа сессии в контексте.
// Ставится после SessionToContextMiddleware, поэтому их отсутствие - ошибка сборки роутера, а не клиента.
func RequireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, ok := r.Context().Value(contextkeys.Login).(string)
		if !ok || login == "" {
			logger.Log.Error("Не удалось получить логин из контекста")
			response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка сервера")
			return
		}

		key, ok := r.Context().Value(contextkeys.SessionKey).(string)
		if !ok || key == "" {
			logger.Log.Error("Не удалось получить ключ сессии из контекста", logger.String("login", login))
			response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка сервера")
			return
		}

		next.ServeHTTP(w, r)
	})
}
