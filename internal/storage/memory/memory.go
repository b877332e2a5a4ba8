package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// MemStorage In-memory хранилище, удовлетворяющее интерфейсу Storage.
// Используется, когда адрес БД не задан: данные живут до перезапуска сервиса.
type MemStorage struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	sessions *session.MemoryStore
}

// InitStorage Инициализация in-memory хранилища.
func InitStorage() *MemStorage {
	logger.Log.Info("В качестве хранилища используется память процесса")

	return &MemStorage{
		users:    make(map[string]*models.User),
		sessions: session.NewMemoryStore(),
	}
}

// GetUser Возвращает пользователя, если пара логин/пароль верна.
func (m *MemStorage) GetUser(_ context.Context, login, password string) (*models.User, error) {
	m.mu.RLock()
	user, ok := m.users[login]
	m.mu.RUnlock()

	if !ok {
		logger.Log.Debug("Пользователь с таким логином не найден", logger.String("login", login))
		return nil, errs.NewErrWrongLoginOrPassword(errs.NewErrLoginNotFound(login, nil))
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		logger.Log.Debug("Неверная пара логин/пароль", logger.String("login", login))
		return nil, errs.NewErrWrongLoginOrPassword(err)
	}

	result := *user
	return &result, nil
}

// EnsureUsers Создает или перезаписывает пользователей.
func (m *MemStorage) EnsureUsers(_ context.Context, users []*models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range users {
		if u == nil || u.Login == "" {
			return errors.New("пустой логин пользователя")
		}

		user := *u
		m.users[u.Login] = &user
	}

	return nil
}

func (m *MemStorage) GetSession(ctx context.Context, key string) (*models.Session, error) {
	return m.sessions.Get(ctx, key)
}

func (m *MemStorage) SaveSession(ctx context.Context, s *models.Session) error {
	return m.sessions.Set(ctx, s)
}

func (m *MemStorage) DeleteSession(ctx context.Context, key string) error {
	return m.sessions.Clear(ctx, key)
}

func (m *MemStorage) ListSessionKeys(ctx context.Context) ([]string, error) {
	return m.sessions.Keys(ctx)
}

func (m *MemStorage) DeleteExpiredSessions(ctx context.Context, now time.Time) ([]string, error) {
	return m.sessions.DeleteExpired(ctx, now), nil
}

// Ping In-memory хранилище доступно всегда.
func (m *MemStorage) Ping(_ context.Context) error {
	return nil
}

func (m *MemStorage) Close() error {
	return nil
}
