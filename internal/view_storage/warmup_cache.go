package view_storage

import (
	"context"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/storage"
)

// WarmUpViewStateCache "Прогрев" in-memory хранилища: для каждой сохраненной сессии создается
// начальное состояние таблицы, чтобы после перезапуска сервиса дашборд продолжал рассылку снимков.
// Сессии, истекшие за время простоя, предварительно удаляются из хранилища.
func WarmUpViewStateCache(ctx context.Context, sessions storage.SessionStorage, cache ViewStateStorage) error {
	if _, err := EvictExpiredSessions(ctx, sessions, cache, time.Now()); err != nil {
		return err
	}

	keys, err := sessions.ListSessionKeys(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		cache.Apply(key, nil)
	}

	return nil
}

// EvictExpiredSessions Удаляет истекшие к моменту now сессии из хранилища и их состояния из кэша.
// Возвращает ключи удаленных сессий.
func EvictExpiredSessions(ctx context.Context, sessions storage.SessionStorage, cache ViewStateStorage, now time.Time) ([]string, error) {
	expired, err := sessions.DeleteExpiredSessions(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, key := range expired {
		cache.Delete(key)
	}

	if len(expired) > 0 {
		logger.Log.Info("Удалены истекшие сессии", logger.Int("count", len(expired)))
	}

	return expired, nil
}
