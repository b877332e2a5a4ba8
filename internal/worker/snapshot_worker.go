package worker

import (
	"context"
	"encoding/json"

	"github.com/trsv-dev/dpim-portal/internal/broadcast"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
)

// NewSnapshotPublisher Функция воркера пула: строит снимок дашборда для состояния сессии
// и публикует его в топик session-<key>:dashboard. Сессии без состояния пропускаются.
func NewSnapshotPublisher(dashboard *viewmodel.Dashboard, cache view_storage.ViewStateStorage, publisher broadcast.Broadcaster) func(ctx context.Context, sessionKey string) {
	return func(ctx context.Context, sessionKey string) {
		if ctx.Err() != nil {
			return
		}

		state, ok := cache.Get(sessionKey)
		if !ok {
			return
		}

		b, err := json.Marshal(dashboard.Snapshot(state))
		if err != nil {
			logger.Log.Error("Ошибка сериализации снимка дашборда", logger.String("err", err.Error()))
			return
		}

		topic := broadcast.Topic(sessionKey, broadcast.StreamDashboard)
		if err = publisher.Publish(topic, b); err != nil {
			logger.Log.Error("Ошибка публикации снимка дашборда",
				logger.String("topic", topic),
				logger.String("err", err.Error()))
		}
	}
}
