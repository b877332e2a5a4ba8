package authorization_handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/auth"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/session"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
)

// AuthorizationHandler Обработчик авторизации.
type AuthorizationHandler struct {
	storage      storage.Storage
	sessions     session.Store
	viewStates   view_storage.ViewStateStorage
	tokenBuilder auth.TokenBuilder
	JWTSecretKey string
	now          func() time.Time
	newKey       func() string
}

// NewAuthorizationHandler Конструктор AuthorizationHandler.
func NewAuthorizationHandler(storage storage.Storage, sessions session.Store, viewStates view_storage.ViewStateStorage,
	tokenBuilder auth.TokenBuilder, JWTSecretKey string) *AuthorizationHandler {
	return &AuthorizationHandler{
		storage:      storage,
		sessions:     sessions,
		viewStates:   viewStates,
		tokenBuilder: tokenBuilder,
		JWTSecretKey: JWTSecretKey,
		now:          time.Now,
		newKey:       uuid.NewString,
	}
}

// UserAuthorization Авторизация пользователя: проверка учетных данных, создание сессии и выдача JWT.
func (h *AuthorizationHandler) UserAuthorization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Error("Ошибка чтения тела запроса", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка чтения тела запроса")
		return
	}

	var req models.LoginRequest
	if err = json.Unmarshal(body, &req); err != nil {
		logger.Log.Debug("Ошибка анмаршаллинга данных в модель LoginRequest", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if err = req.Validate(); err != nil {
		logger.Log.Debug("Ошибка при валидации данных пользователя", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.storage.GetUser(ctx, req.Username, req.Password)
	var ErrWrongLoginOrPassword *errs.ErrWrongLoginOrPassword
	switch {
	case errors.As(err, &ErrWrongLoginOrPassword):
		logger.Log.Warn("Неверная пара логин/пароль",
			logger.String("login", req.Username),
			logger.String("err", ErrWrongLoginOrPassword.Error()))
		response.ErrorJSON(w, http.StatusUnauthorized, "Неверная пара логин/пароль")
		return
	case err != nil:
		logger.Log.Error("Внутренняя ошибка сервера", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	sess := models.NewSession(user, h.newKey(), h.now())
	// сессия живет ровно столько же, сколько выданный токен
	sess.ExpiresAt = sess.Timestamp.Add(auth.TokenTTL(req.Remember))

	if err = h.sessions.Set(ctx, sess); err != nil {
		logger.Log.Error("Не удалось сохранить сессию", logger.String("login", user.Login), logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	tokenString, err := h.tokenBuilder.BuildJWTToken(sess, req.Remember, h.JWTSecretKey)
	if err != nil {
		logger.Log.Error("Ошибка при создании JWT-токена", logger.String("err", err.Error()))
		h.dropSession(ctx, sess.Key)
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при создании JWT-токена")
		return
	}

	auth.CreateCookie(w, tokenString, auth.TokenTTL(req.Remember))

	// состояние дашборда новой сессии: фильтр All, первая страница
	h.viewStates.Apply(sess.Key, nil)

	logger.Log.Info("Успешная авторизация пользователя",
		logger.String("login", user.Login),
		logger.String("role", user.Role),
		logger.Bool("remember", req.Remember))

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Message: "Пользователь авторизован",
		User:    sess.User,
		Token:   tokenString,
		Key:     sess.Key,
	})
}

// UserLogout Завершение сессии: удаление сессии, состояния дашборда и куки.
func (h *AuthorizationHandler) UserLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	if err := h.sessions.Clear(ctx, creds.SessionKey); err != nil {
		logger.Log.Error("Не удалось удалить сессию",
			logger.String("login", creds.Login),
			logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	h.viewStates.Delete(creds.SessionKey)
	auth.ClearCookie(w)

	logger.Log.Info("Пользователь вышел", logger.String("login", creds.Login))

	response.SuccessJSON(w, http.StatusOK, "Сессия завершена")
}

// GetSession Текущая сессия пользователя.
func (h *AuthorizationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	sess, err := h.sessions.Get(ctx, creds.SessionKey)
	if err != nil {
		var ErrSessionNotFound *errs.ErrSessionNotFound
		if errors.As(err, &ErrSessionNotFound) {
			response.ErrorJSON(w, http.StatusUnauthorized, "Сессия истекла или была закрыта")
			return
		}

		logger.Log.Error("Не удалось получить сессию", logger.String("login", creds.Login), logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

// Откат сессии, если ее не удалось выдать пользователю.
func (h *AuthorizationHandler) dropSession(ctx context.Context, key string) {
	if err := h.sessions.Clear(ctx, key); err != nil {
		logger.Log.Warn("Не удалось откатить сессию", logger.String("key", key), logger.String("err", err.Error()))
	}
}
