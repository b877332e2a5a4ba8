package worker

import (
	"context"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
)

// DashboardBroadcastWorker Периодически ставит в очередь пула рассылку снимков дашборда
// для всех активных сессий. Перед каждой рассылкой истекшие сессии удаляются из хранилища и кэша.
func DashboardBroadcastWorker(ctx context.Context, sessions storage.SessionStorage, cache view_storage.ViewStateStorage, pool WorkerPool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := view_storage.EvictExpiredSessions(ctx, sessions, cache, time.Now()); err != nil {
			logger.Log.Warn("Не удалось удалить истекшие сессии", logger.String("err", err.Error()))
		}

		submitSessions(cache, pool)

		select {
		case <-ctx.Done():
			logger.Log.Info("Завершение работы воркера DashboardBroadcastWorker по контексту", logger.String("info", ctx.Err().Error()))
			return
		case <-ticker.C: // следующий цикл по таймеру
		}
	}
}

// submitSessions Отправляет в пул все ключи сессий. Возвращает количество отброшенных задач.
func submitSessions(cache view_storage.ViewStateStorage, pool WorkerPool) int {
	dropped := 0

	for _, key := range cache.Keys() {
		if !pool.Submit(key) {
			dropped++
		}
	}

	if dropped > 0 {
		logger.Log.Warn("Очередь рассылки снимков переполнена, задачи пропущены", logger.Int("dropped", dropped))
	}

	return dropped
}
