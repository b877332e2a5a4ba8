package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/migrations"
)

// ApplyMigrations применяет все миграции из embed.FS
func ApplyMigrations(DatabaseURI string) error {
	names, err := MigrationNames()
	if err != nil {
		logger.Log.Error("Ошибка чтения встроенных миграций", logger.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("Встроенные миграции", logger.Int("count", len(names)), logger.String("files", strings.Join(names, ", ")))

	// источник миграций - встроенная файловая система пакета migrations
	d, err := iofs.New(migrations.Files, ".")
	if err != nil {
		logger.Log.Error("Ошибка подготовки встраивания миграций", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка подготовки встраивания миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, DatabaseURI)
	if err != nil {
		logger.Log.Error("Ошибка подготовки миграций", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка подготовки миграций: %w", err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Log.Warn("Ошибка закрытия источника миграций", logger.String("err", srcErr.Error()))
		}
		if dbErr != nil {
			logger.Log.Warn("Ошибка закрытия соединения мигратора", logger.String("err", dbErr.Error()))
		}
	}()

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Info("Нет новых миграций", logger.String("info", err.Error()))
			return nil
		}
		logger.Log.Error("ошибка миграции", logger.String("err", err.Error()))
		return fmt.Errorf("ошибка применения миграции: %w", err)
	}

	logger.Log.Info("Миграции были применены")
	return nil
}

// MigrationNames Имена файлов встроенных миграций (для диагностики при старте).
func MigrationNames() ([]string, error) {
	entries, err := migrations.Files.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения встроенных миграций: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}
