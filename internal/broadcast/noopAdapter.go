package broadcast

import (
	"context"
	"net/http"
)

// NoopAdapter Заглушка для режима без web-интерфейса.
// Реализует интерфейс Broadcaster, но ничего не рассылает.
type NoopAdapter struct {
	resolve TopicResolver
}

// NewNoopAdapter Создает новый экземпляр "пустого" адаптера.
func NewNoopAdapter(resolve TopicResolver) *NoopAdapter {
	return &NoopAdapter{resolve: resolve}
}

// Publish Ничего не делает и всегда возвращает nil.
func (n *NoopAdapter) Publish(topic string, data []byte) error {
	return nil
}

// Close Ничего не делает и всегда возвращает nil.
func (n *NoopAdapter) Close() error {
	return nil
}

// Subscribe Возвращает nil-канал и пустую функцию отписки.
func (n *NoopAdapter) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	return nil, func() {}, nil
}

// HTTPHandler Отвечает 404 Not Found на любое подключение к /events.
func (n *NoopAdapter) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
