package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/trsv-dev/dpim-portal/internal/models"
)

// CookieName Имя куки с JWT-токеном.
const CookieName = "JWT"

// Claims Данные, записываемые в токен.
type Claims struct {
	jwt.RegisteredClaims
	Login      string `json:"login"`
	Role       string `json:"role"`
	SessionKey string `json:"sessionKey"`
}

const (
	TokenExp         = time.Hour * 24
	RememberTokenExp = time.Hour * 24 * 30
)

// JWTTokenBuilder Реализация TokenBuilder на golang-jwt.
type JWTTokenBuilder struct{}

// NewJWTTokenBuilder Конструктор JWTTokenBuilder.
func NewJWTTokenBuilder() *JWTTokenBuilder {
	return &JWTTokenBuilder{}
}

// TokenTTL Время жизни токена: с флажком "запомнить меня" - 30 дней, иначе сутки.
func TokenTTL(remember bool) time.Duration {
	if remember {
		return RememberTokenExp
	}

	return TokenExp
}

// BuildJWTToken Создание JWT-токена для сессии.
func (j *JWTTokenBuilder) BuildJWTToken(session *models.Session, remember bool, JWTSecretKey string) (string, error) {
	now := time.Now()

	// создаем экземпляр структуры, которую будем записывать в токен
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL(remember))),
		},
		Login:      session.User.Username,
		Role:       session.User.Role,
		SessionKey: session.Key,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// подписываем секретным ключом и возвращаем токен в виде строки
	tokenString, err := token.SignedString([]byte(JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}

	return tokenString, nil
}

// GetClaims Получение данных пользователя с помощью распарсивания JWT-токена.
func (j *JWTTokenBuilder) GetClaims(tokenString, JWTSecretKey string) (*Claims, error) {
	claims := &Claims{}

	// распарсиваем токен, проверяя на метод подписи
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неверный метод подписи: %v", t.Header["alg"])
		}

		return []byte(JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("токен недействителен")
	}

	if claims.SessionKey == "" {
		return nil, fmt.Errorf("в токене нет ключа сессии")
	}

	return claims, nil
}

// TokenFromRequest Извлечение токена из куки JWT или заголовка "Authorization: Bearer".
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// CreateCookie Создание и установка куки с JWT-токеном.
func CreateCookie(w http.ResponseWriter, tokenString string, ttl time.Duration) {
	cookie := http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  time.Now().Add(ttl),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, &cookie)
}

// ClearCookie Удаление куки с JWT-токеном.
func ClearCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, &cookie)
}
