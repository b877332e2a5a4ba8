package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/auth"
	"github.com/trsv-dev/dpim-portal/internal/contextkeys"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/session"
)

// SessionToContextMiddleware Проверяет JWT (кука или заголовок Authorization) и наличие сессии в хранилище,
// после чего кладет логин, роль и ключ сессии в контекст запроса.
func SessionToContextMiddleware(JWTSecretKey string, tokenBuilder auth.TokenBuilder, sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				response.ErrorJSON(w, http.StatusUnauthorized, "Пользователь не авторизован")
				return
			}

			claims, err := tokenBuilder.GetClaims(token, JWTSecretKey)
			if err != nil {
				logger.Log.Debug("Невалидный токен", logger.String("err", err.Error()))
				response.ErrorJSON(w, http.StatusUnauthorized, "Невалидный токен")
				return
			}

			sess, err := sessions.Get(r.Context(), claims.SessionKey)
			if err != nil {
				var notFound *errs.ErrSessionNotFound
				if errors.As(err, &notFound) {
					response.ErrorJSON(w, http.StatusUnauthorized, "Сессия истекла или была закрыта")
					return
				}

				logger.Log.Error("Не удалось получить сессию", logger.String("err", err.Error()))
				response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка сервера")
				return
			}

			if sess.Expired(time.Now()) {
				if err = sessions.Clear(r.Context(), sess.Key); err != nil {
					logger.Log.Warn("Не удалось удалить истекшую сессию", logger.String("err", err.Error()))
				}
				response.ErrorJSON(w, http.StatusUnauthorized, "Сессия истекла или была закрыта")
				return
			}

			if sess.User.Username != claims.Login {
				logger.Log.Warn("Логин токена не совпадает с логином сессии",
					logger.String("token_login", claims.Login),
					logger.String("session_login", sess.User.Username),
				)
				response.ErrorJSON(w, http.StatusUnauthorized, "Невалидный токен")
				return
			}

			ctx := context.WithValue(r.Context(), contextkeys.Login, sess.User.Username)
			ctx = context.WithValue(ctx, contextkeys.Role, sess.User.Role)
			ctx = context.WithValue(ctx, contextkeys.SessionKey, sess.Key)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
