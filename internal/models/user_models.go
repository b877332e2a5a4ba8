package models

import "time"

// Права доступа пользователей портала.
const (
	PermissionRead   = "read"
	PermissionWrite  = "write"
	PermissionManage = "manage"
)

// User Модель пользователя портала.
type User struct {
	Login        string   `json:"username"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	PasswordHash []byte   `json:"-"`
}

// SessionUser Данные пользователя, сохраняемые в сессии.
type SessionUser struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Session Модель сессии: {user, timestamp, key}.
// ExpiresAt совпадает со сроком жизни выданного токена, нулевое значение - бессрочная сессия.
type Session struct {
	User      SessionUser `json:"user"`
	Timestamp time.Time   `json:"timestamp"`
	Key       string      `json:"key"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
}

// NewSession Создание сессии пользователя с заданным ключом.
func NewSession(user *User, key string, now time.Time) *Session {
	permissions := make([]string, len(user.Permissions))
	copy(permissions, user.Permissions)

	return &Session{
		User: SessionUser{
			Username:    user.Login,
			Role:        user.Role,
			Name:        user.Name,
			Permissions: permissions,
		},
		Timestamp: now.UTC(),
		Key:       key,
	}
}

// Expired Сообщает, истек ли срок жизни сессии к моменту now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HasPermission Проверяет наличие права у пользователя сессии.
func (s *Session) HasPermission(permission string) bool {
	for _, p := range s.User.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Clone Глубокая копия сессии.
func (s *Session) Clone() *Session {
	clone := *s
	clone.User.Permissions = make([]string, len(s.User.Permissions))
	copy(clone.User.Permissions, s.User.Permissions)

	return &clone
}
