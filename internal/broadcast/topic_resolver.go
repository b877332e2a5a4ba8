package broadcast

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/trsv-dev/dpim-portal/internal/auth"
)

// StreamDashboard Поток снимков дашборда.
const StreamDashboard = "dashboard"

// Topic Имя топика потока stream для сессии.
func Topic(sessionKey, stream string) string {
	return fmt.Sprintf("session-%s:%s", sessionKey, stream)
}

// MakeJWTTopicResolver Возвращает resolver, использующий JWT из куки или заголовка Authorization.
func MakeJWTTopicResolver(JWTSecretKey string, tokenBuilder auth.TokenBuilder) TopicResolver {
	return func(r *http.Request) (string, error) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			return "", errors.New("токен не передан")
		}

		claims, err := tokenBuilder.GetClaims(token, JWTSecretKey)
		if err != nil {
			return "", err
		}

		stream := r.URL.Query().Get("stream")
		if stream == "" {
			return "", errors.New("параметр запроса stream обязателен")
		}

		if stream != StreamDashboard {
			return "", errors.New("неизвестный тип потока")
		}

		return Topic(claims.SessionKey, stream), nil
	}
}
