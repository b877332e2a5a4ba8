package session

import (
	"context"

	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/storage"
)

// StorageStore Адаптер Store поверх SessionStorage основного хранилища (память или PostgreSQL).
type StorageStore struct {
	storage storage.SessionStorage
}

// NewStorageStore Конструктор StorageStore.
func NewStorageStore(s storage.SessionStorage) *StorageStore {
	return &StorageStore{storage: s}
}

func (ss *StorageStore) Get(ctx context.Context, key string) (*models.Session, error) {
	return ss.storage.GetSession(ctx, key)
}

func (ss *StorageStore) Set(ctx context.Context, session *models.Session) error {
	return ss.storage.SaveSession(ctx, session)
}

func (ss *StorageStore) Clear(ctx context.Context, key string) error {
	return ss.storage.DeleteSession(ctx, key)
}
