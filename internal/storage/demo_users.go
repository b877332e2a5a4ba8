package storage

import (
	"fmt"

	"github.com/trsv-dev/dpim-portal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// DemoUsers Демонстрационные учетные записи портала. У всех один пароль, задаваемый в конфигурации.
func DemoUsers(password string) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("не удалось хэшировать пароль демо-пользователей: %w", err)
	}

	return []*models.User{
		{
			Login:        "admin",
			Name:         "ผู้ดูแลระบบ",
			Role:         "admin",
			Permissions:  []string{models.PermissionRead, models.PermissionWrite, models.PermissionManage},
			PasswordHash: hash,
		},
		{
			Login:        "operator",
			Name:         "เจ้าหน้าที่ปฏิบัติการ",
			Role:         "operator",
			Permissions:  []string{models.PermissionRead, models.PermissionWrite},
			PasswordHash: hash,
		},
		{
			Login:        "viewer",
			Name:         "ผู้ใช้งานทั่วไป",
			Role:         "viewer",
			Permissions:  []string{models.PermissionRead},
			PasswordHash: hash,
		},
	}, nil
}
