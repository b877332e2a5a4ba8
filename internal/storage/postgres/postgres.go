package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/storage/postgres/utils"
	"golang.org/x/crypto/bcrypt"
)

// PgStorage Структура хранилища в PostgreSQL, удовлетворяющая интерфейсу Storage.
type PgStorage struct {
	DB *sql.DB
}

// InitStorage Инициализация хранилища.
func InitStorage(DatabaseURI string) (*PgStorage, error) {
	// открываем соединение с БД
	pg, err := sql.Open("pgx", DatabaseURI)
	if err != nil {
		logger.Log.Error("Ошибка подключения к БД PostgreSQL", logger.String("err", err.Error()))
		return nil, fmt.Errorf("ошибка подключения к БД PostgreSQL: %w", err)
	}

	// проверяем, "живое" ли соединение
	if err = pg.Ping(); err != nil {
		logger.Log.Error("Ошибка при попытке подключения к БД PostgreSQL", logger.String("err", err.Error()))
		_ = pg.Close()
		return nil, fmt.Errorf("нет связи с БД PostgreSQL: %w", err)
	}

	// применяем миграции
	err = utils.ApplyMigrations(DatabaseURI)
	if err != nil {
		logger.Log.Error("Ошибка применения миграций к БД PostgreSQL", logger.String("err", err.Error()))
		_ = pg.Close()
		return nil, fmt.Errorf("ошибка применения миграций к БД PostgreSQL: %w", err)
	}

	logger.Log.Info("В качестве хранилища используется БД PostgreSQL")
	return &PgStorage{DB: pg}, nil
}

// GetUser Возвращает пользователя, если пара логин/пароль верна.
func (pg *PgStorage) GetUser(ctx context.Context, login, password string) (*models.User, error) {
	var (
		user        models.User
		permissions []byte
		hash        string
	)

	query := `SELECT login, name, role, permissions, password FROM users WHERE login = $1`

	err := pg.DB.QueryRowContext(ctx, query, login).Scan(&user.Login, &user.Name, &user.Role, &permissions, &hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			logger.Log.Debug("Пользователь с таким логином не найден", logger.String("login", login))
			return nil, errs.NewErrWrongLoginOrPassword(errs.NewErrLoginNotFound(login, err))
		default:
			logger.Log.Error("Ошибка запроса", logger.String("err", err.Error()))
			return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
		}
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		logger.Log.Debug("Неверная пара логин/пароль", logger.String("login", login))
		return nil, errs.NewErrWrongLoginOrPassword(err)
	}

	if err = json.Unmarshal(permissions, &user.Permissions); err != nil {
		return nil, fmt.Errorf("ошибка разбора прав пользователя %s: %w", login, err)
	}

	user.PasswordHash = []byte(hash)

	return &user, nil
}

// EnsureUsers Создает или обновляет пользователей в одной транзакции.
func (pg *PgStorage) EnsureUsers(ctx context.Context, users []*models.User) error {
	tx, err := pg.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO users (login, name, role, permissions, password)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (login) DO UPDATE
			  SET name = EXCLUDED.name, role = EXCLUDED.role,
			      permissions = EXCLUDED.permissions, password = EXCLUDED.password`

	for _, u := range users {
		permissions, err := json.Marshal(u.Permissions)
		if err != nil {
			return fmt.Errorf("ошибка сериализации прав пользователя %s: %w", u.Login, err)
		}

		if _, err = tx.ExecContext(ctx, query, u.Login, u.Name, u.Role, permissions, string(u.PasswordHash)); err != nil {
			logger.Log.Error("Ошибка при сохранении пользователя", logger.String("login", u.Login), logger.String("err", err.Error()))
			return fmt.Errorf("ошибка сохранения пользователя %s: %w", u.Login, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}

// GetSession Возвращает сессию по ключу.
func (pg *PgStorage) GetSession(ctx context.Context, key string) (*models.Session, error) {
	var payload []byte

	query := `SELECT payload FROM sessions WHERE key = $1`

	err := pg.DB.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, errs.NewErrSessionNotFound(key, err)
		default:
			logger.Log.Error("Ошибка запроса", logger.String("err", err.Error()))
			return nil, fmt.Errorf("ошибка получения сессии: %w", err)
		}
	}

	var s models.Session
	if err = json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("ошибка разбора сессии %s: %w", key, err)
	}

	return &s, nil
}

// SaveSession Сохраняет сессию (перезаписывает существующую с тем же ключом).
func (pg *PgStorage) SaveSession(ctx context.Context, s *models.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	query := `INSERT INTO sessions (key, login, payload, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at`

	// бессрочная сессия хранится с expires_at = NULL
	expiresAt := sql.NullTime{Time: s.ExpiresAt, Valid: !s.ExpiresAt.IsZero()}

	if _, err = pg.DB.ExecContext(ctx, query, s.Key, s.User.Username, payload, s.Timestamp, expiresAt); err != nil {
		logger.Log.Error("Ошибка при сохранении сессии", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	return nil
}

// DeleteSession Удаляет сессию. Удаление несуществующей сессии не считается ошибкой.
func (pg *PgStorage) DeleteSession(ctx context.Context, key string) error {
	query := `DELETE FROM sessions WHERE key = $1`

	if _, err := pg.DB.ExecContext(ctx, query, key); err != nil {
		logger.Log.Error("Ошибка при удалении сессии", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}

	return nil
}

// ListSessionKeys Ключи всех сохраненных сессий в порядке создания.
func (pg *PgStorage) ListSessionKeys(ctx context.Context) ([]string, error) {
	query := `SELECT key FROM sessions ORDER BY created_at`

	rows, err := pg.DB.QueryContext(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка при получении списка сессий", logger.String("err", err.Error()))
		return nil, fmt.Errorf("ошибка получения списка сессий: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		logger.Log.Error("Ошибка при обработке строк списка сессий", logger.String("err", err.Error()))
		return nil, err
	}

	return keys, nil
}

// DeleteExpiredSessions Удаляет истекшие сессии и возвращает их ключи.
func (pg *PgStorage) DeleteExpiredSessions(ctx context.Context, now time.Time) ([]string, error) {
	query := `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1 RETURNING key`

	rows, err := pg.DB.QueryContext(ctx, query, now)
	if err != nil {
		logger.Log.Error("Ошибка при удалении истекших сессий", logger.String("err", err.Error()))
		return nil, fmt.Errorf("ошибка удаления истекших сессий: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		logger.Log.Error("Ошибка при обработке строк истекших сессий", logger.String("err", err.Error()))
		return nil, err
	}

	return keys, nil
}

// Ping Проверка доступности БД.
func (pg *PgStorage) Ping(ctx context.Context) error {
	return pg.DB.PingContext(ctx)
}

func (pg *PgStorage) Close() error {
	err := pg.DB.Close()
	if err != nil {
		logger.Log.Error("Ошибка закрытия соединения с БД PostgreSQL", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка закрытия БД PostgreSQL: %w", err)
	}

	return nil
}
