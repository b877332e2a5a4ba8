// Package session Хранилище сессий пользователей портала (get/set/clear).
// Дашборд и его модель представления с сессиями не работают: хранилище передается
// только обработчикам авторизации и middleware.
package session

import (
	"context"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

//go:generate mockgen -destination=mocks/store_mock.go -package=mocks . Store

// Store Интерфейс хранилища сессий.
type Store interface {
	Get(ctx context.Context, key string) (*models.Session, error)
	Set(ctx context.Context, session *models.Session) error
	Clear(ctx context.Context, key string) error
}
