package broadcast

import (
	"context"
	"net/http"

	"github.com/r3labs/sse/v2"
	"github.com/trsv-dev/dpim-portal/internal/logger"
)

// R3labsSSEAdapter Адаптер для библиотеки r3labs/sse.
// Каждый подписчик получает собственный поток, имя которого определяет resolver.
type R3labsSSEAdapter struct {
	srv     *sse.Server
	resolve TopicResolver
}

// NewR3labsSSEAdapter Создает новый экземпляр адаптера (и внутренний sse.Server).
func NewR3labsSSEAdapter(resolve TopicResolver) *R3labsSSEAdapter {
	srv := sse.New()

	// снимок дашборда самодостаточен, старые события новому подписчику не нужны
	srv.AutoReplay = false
	// поток создается при первом подключении подписчика
	srv.AutoStream = true

	return &R3labsSSEAdapter{srv: srv, resolve: resolve}
}

// Publish Публикует событие в указанный топик (stream). Данные передаются в поле Event.Data.
// Если подписчиков топика нет, событие отбрасывается.
func (a *R3labsSSEAdapter) Publish(topic string, data []byte) error {
	if !a.HasSubscribers(topic) {
		return nil
	}

	a.srv.Publish(topic, &sse.Event{Data: data})
	return nil
}

// HasSubscribers Есть ли открытый поток для топика.
func (a *R3labsSSEAdapter) HasSubscribers(topic string) bool {
	return a.srv.StreamExists(topic)
}

// Close Закрывает все EventSource соединения.
func (a *R3labsSSEAdapter) Close() error {
	a.srv.Close()
	return nil
}

// Subscribe r3labs реализует подписки по HTTP, а не через Go-каналы.
// Используйте HTTPHandler() для обслуживания подключений EventSource.
func (a *R3labsSSEAdapter) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	return nil, nil, ErrSubscribeNotSupported
}

// HTTPHandler Возвращает http.Handler для монтирования на /events.
// Топик определяется resolver-ом и подставляется в параметр stream клона запроса,
// поэтому клиент не может подписаться на чужой поток.
func (a *R3labsSSEAdapter) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topic, err := a.resolve(r)
		if err != nil {
			logger.Log.Debug("Отказ в подписке на события", logger.String("err", err.Error()))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("stream", topic)
		r2.URL.RawQuery = q.Encode()

		a.srv.ServeHTTP(w, r2)
	})
}
