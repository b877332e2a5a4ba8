package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// init Инициализирует logger для тестов.
func init() {
	logger.InitLogger("error", "stdout")
}

// TestPgStorageImplementsStorage Проверка соответствия интерфейсу.
func TestPgStorageImplementsStorage(t *testing.T) {
	var _ storage.Storage = (*PgStorage)(nil)
}

// TestGetUser Проверяет получение пользователя с проверкой пароля.
func TestGetUser(t *testing.T) {
	// cоздаем хэшированный пароль для тестов
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.MinCost)

	getUserQuery := `SELECT login, name, role, permissions, password FROM users WHERE login = $1`
	columns := []string{"login", "name", "role", "permissions", "password"}

	tests := []struct {
		name           string                                  // название теста
		login          string                                  // логин
		password       string                                  // пароль
		mockSetup      func(mock sqlmock.Sqlmock)              // настройка мока
		expectError    bool                                    // ожидается ли ошибка
		errorAssertion func(t *testing.T, err error)           // дополнительная проверка ошибки
		validate       func(t *testing.T, result *models.User) // валидация результата
	}{
		{
			name:     "успешная авторизация пользователя",
			login:    "operator",
			password: "correctpassword",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("operator", "Operator", "operator", []byte(`["read","write"]`), string(hashedPassword))
				mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
					WithArgs("operator").
					WillReturnRows(rows)
			},
			validate: func(t *testing.T, result *models.User) {
				require.NotNil(t, result)
				assert.Equal(t, "operator", result.Login)
				assert.Equal(t, "Operator", result.Name)
				assert.Equal(t, "operator", result.Role)
				assert.Equal(t, []string{"read", "write"}, result.Permissions)
				assert.Equal(t, hashedPassword, result.PasswordHash)
			},
		},
		{
			name:     "ошибка - пользователь не найден",
			login:    "nonexistent",
			password: "password",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
					WithArgs("nonexistent").
					WillReturnError(sql.ErrNoRows)
			},
			expectError: true,
			errorAssertion: func(t *testing.T, err error) {
				var wrongPassErr *errs.ErrWrongLoginOrPassword
				assert.True(t, errors.As(err, &wrongPassErr), "ошибка должна быть типа ErrWrongLoginOrPassword")
				var notFoundErr *errs.ErrLoginNotFound
				assert.True(t, errors.As(err, &notFoundErr), "причина должна быть ErrLoginNotFound")
			},
			validate: func(t *testing.T, result *models.User) {
				assert.Nil(t, result)
			},
		},
		{
			name:     "ошибка - неверный пароль",
			login:    "operator",
			password: "wrongpassword",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("operator", "Operator", "operator", []byte(`["read"]`), string(hashedPassword))
				mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
					WithArgs("operator").
					WillReturnRows(rows)
			},
			expectError: true,
			errorAssertion: func(t *testing.T, err error) {
				var wrongPassErr *errs.ErrWrongLoginOrPassword
				assert.True(t, errors.As(err, &wrongPassErr), "ошибка должна быть типа ErrWrongLoginOrPassword")
			},
			validate: func(t *testing.T, result *models.User) {
				assert.Nil(t, result)
			},
		},
		{
			name:     "ошибка БД",
			login:    "operator",
			password: "correctpassword",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(getUserQuery)).
					WithArgs("operator").
					WillReturnError(errors.New("connection reset"))
			},
			expectError: true,
			errorAssertion: func(t *testing.T, err error) {
				var wrongPassErr *errs.ErrWrongLoginOrPassword
				assert.False(t, errors.As(err, &wrongPassErr))
				assert.Contains(t, err.Error(), "connection reset")
			},
			validate: func(t *testing.T, result *models.User) {
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockSetup(mock)

			pg := &PgStorage{DB: db}

			result, err := pg.GetUser(context.Background(), tt.login, tt.password)

			if tt.expectError {
				assert.Error(t, err)
				if tt.errorAssertion != nil {
					tt.errorAssertion(t, err)
				}
			} else {
				assert.NoError(t, err)
			}

			tt.validate(t, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestEnsureUsers Проверяет создание пользователей в транзакции.
func TestEnsureUsers(t *testing.T) {
	ensureQuery := `INSERT INTO users (login, name, role, permissions, password)`

	users := []*models.User{
		{Login: "admin", Name: "Admin", Role: "admin", Permissions: []string{"read", "write", "manage"}, PasswordHash: []byte("hash")},
		{Login: "viewer", Name: "Viewer", Role: "viewer", Permissions: []string{"read"}, PasswordHash: []byte("hash")},
	}

	tests := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "успешное создание",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WithArgs("admin", "Admin", "admin", []byte(`["read","write","manage"]`), "hash").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WithArgs("viewer", "Viewer", "viewer", []byte(`["read"]`), "hash").
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "ошибка вставки - откат транзакции",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WillReturnError(errors.New("insert failed"))
				mock.ExpectRollback()
			},
			expectError: true,
		},
		{
			name: "ошибка начала транзакции",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("begin failed"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockSetup(mock)

			pg := &PgStorage{DB: db}
			err = pg.EnsureUsers(context.Background(), users)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestSessionLifecycle Проверяет сохранение, получение, список и удаление сессий.
func TestSessionLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pg := &PgStorage{DB: db}
	ctx := context.Background()

	s := &models.Session{
		User: models.SessionUser{
			Username:    "operator",
			Role:        "operator",
			Name:        "Operator",
			Permissions: []string{"read", "write"},
		},
		Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Key:       "0b7a4f0e-6a0d-4d3c-9d3e-0c1f2a3b4c5d",
		ExpiresAt: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (key, login, payload, created_at, expires_at)`)).
		WithArgs(s.Key, "operator", payload, s.Timestamp, s.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM sessions WHERE key = $1`)).
		WithArgs(s.Key).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM sessions ORDER BY created_at`)).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow(s.Key).AddRow("another"))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE key = $1`)).
		WithArgs(s.Key).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pg.SaveSession(ctx, s))

	got, err := pg.GetSession(ctx, s.Key)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	keys, err := pg.ListSessionKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{s.Key, "another"}, keys)

	require.NoError(t, pg.DeleteSession(ctx, s.Key))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetSessionErrors Проверяет ошибки получения сессии.
func TestGetSessionErrors(t *testing.T) {
	query := `SELECT payload FROM sessions WHERE key = $1`

	tests := []struct {
		name           string
		mockSetup      func(mock sqlmock.Sqlmock)
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "сессия не найдена",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("k").WillReturnError(sql.ErrNoRows)
			},
			errorAssertion: func(t *testing.T, err error) {
				var notFound *errs.ErrSessionNotFound
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, "k", notFound.Key)
			},
		},
		{
			name: "поврежденные данные",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("k").
					WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte("{broken")))
			},
			errorAssertion: func(t *testing.T, err error) {
				var notFound *errs.ErrSessionNotFound
				assert.False(t, errors.As(err, &notFound))
			},
		},
		{
			name: "ошибка БД",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("k").WillReturnError(errors.New("timeout"))
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "timeout")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockSetup(mock)

			pg := &PgStorage{DB: db}
			s, err := pg.GetSession(context.Background(), "k")

			assert.Nil(t, s)
			require.Error(t, err)
			tt.errorAssertion(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestListSessionKeysErrors Проверяет ошибки получения списка сессий.
func TestListSessionKeysErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(`SELECT key FROM sessions ORDER BY created_at`)

	mock.ExpectQuery(query).WillReturnError(errors.New("query failed"))
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRows([]string{"key"}).AddRow("a").RowError(0, errors.New("row failed")),
	)

	pg := &PgStorage{DB: db}

	_, err = pg.ListSessionKeys(context.Background())
	assert.Error(t, err)

	_, err = pg.ListSessionKeys(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSaveSessionWithoutExpiry Бессрочная сессия сохраняется с expires_at = NULL.
func TestSaveSessionWithoutExpiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &models.Session{
		User:      models.SessionUser{Username: "viewer", Role: "viewer", Name: "Viewer", Permissions: []string{"read"}},
		Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Key:       "k1",
	}
	payload, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (key, login, payload, created_at, expires_at)`)).
		WithArgs("k1", "viewer", payload, s.Timestamp, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pg := &PgStorage{DB: db}
	require.NoError(t, pg.SaveSession(context.Background(), s))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteExpiredSessions Проверяет удаление истекших сессий.
func TestDeleteExpiredSessions(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= $1 RETURNING key`)

	tests := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		wantKeys  []string
		wantErr   bool
	}{
		{
			name: "удалены две сессии",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(now).
					WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("a").AddRow("b"))
			},
			wantKeys: []string{"a", "b"},
		},
		{
			name: "истекших сессий нет",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(now).WillReturnRows(sqlmock.NewRows([]string{"key"}))
			},
			wantKeys: []string{},
		},
		{
			name: "ошибка запроса",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(now).WillReturnError(errors.New("query failed"))
			},
			wantErr: true,
		},
		{
			name: "ошибка чтения строки",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(now).WillReturnRows(
					sqlmock.NewRows([]string{"key"}).AddRow("a").RowError(0, errors.New("row failed")),
				)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockSetup(mock)

			pg := &PgStorage{DB: db}
			keys, err := pg.DeleteExpiredSessions(context.Background(), now)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantKeys, keys)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestPing Проверяет пинг БД.
func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("db down"))

	pg := &PgStorage{DB: db}

	assert.NoError(t, pg.Ping(context.Background()))
	assert.Error(t, pg.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestClose Проверяет закрытие соединения.
func TestClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()

	pg := &PgStorage{DB: db}
	assert.NoError(t, pg.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
