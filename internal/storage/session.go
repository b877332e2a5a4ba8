package storage

import (
	"context"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// SessionStorage Интерфейс для сессий пользователей.
type SessionStorage interface {
	GetSession(ctx context.Context, key string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, key string) error
	ListSessionKeys(ctx context.Context) ([]string, error)
	// DeleteExpiredSessions Удаляет сессии, срок жизни которых истек к моменту now, и возвращает их ключи.
	DeleteExpiredSessions(ctx context.Context, now time.Time) ([]string, error)
}
