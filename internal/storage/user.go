package storage

import (
	"context"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// UserStorage Интерфейс для пользователей.
type UserStorage interface {
	// GetUser Возвращает пользователя, если пара логин/пароль верна.
	GetUser(ctx context.Context, login, password string) (*models.User, error)
	// EnsureUsers Создает или обновляет учетные записи (демо-пользователей).
	EnsureUsers(ctx context.Context, users []*models.User) error
}
