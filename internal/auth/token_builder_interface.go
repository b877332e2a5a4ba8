package auth

import (
	"github.com/trsv-dev/dpim-portal/internal/models"
)

//go:generate mockgen -destination=mocks/mock_token_builder.go -package=mocks . TokenBuilder

// TokenBuilder Интерфейс для создания и парсинга JWT-токенов.
type TokenBuilder interface {
	BuildJWTToken(session *models.Session, remember bool, JWTSecretKey string) (string, error)
	GetClaims(tokenString, JWTSecretKey string) (*Claims, error)
}
