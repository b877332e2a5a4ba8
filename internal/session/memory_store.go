package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/models"
)

// MemoryStore In-memory хранилище сессий.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemoryStore Конструктор MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

// Get Возвращает копию сессии по ключу.
func (ms *MemoryStore) Get(_ context.Context, key string) (*models.Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	s, ok := ms.sessions[key]
	if !ok {
		return nil, errs.NewErrSessionNotFound(key, nil)
	}

	return s.Clone(), nil
}

// Set Сохраняет копию сессии (перезаписывает существующую с тем же ключом).
func (ms *MemoryStore) Set(_ context.Context, session *models.Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.sessions[session.Key] = session.Clone()

	return nil
}

// Clear Удаляет сессию. Удаление несуществующей сессии не считается ошибкой.
func (ms *MemoryStore) Clear(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.sessions, key)

	return nil
}

// Keys Ключи всех сессий в отсортированном порядке.
func (ms *MemoryStore) Keys(_ context.Context) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	keys := make([]string, 0, len(ms.sessions))
	for k := range ms.sessions {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys, nil
}

// DeleteExpired Удаляет истекшие сессии и возвращает их ключи в отсортированном порядке.
func (ms *MemoryStore) DeleteExpired(_ context.Context, now time.Time) []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	expired := make([]string, 0)
	for k, s := range ms.sessions {
		if s.Expired(now) {
			delete(ms.sessions, k)
			expired = append(expired, k)
		}
	}

	sort.Strings(expired)

	return expired
}
