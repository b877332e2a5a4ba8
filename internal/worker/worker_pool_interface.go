package worker

import (
	"context"
	"sync"

	"github.com/trsv-dev/dpim-portal/internal/logger"
)

//go:generate mockgen -destination=mocks/worker_pool_mock.go -package=mocks . WorkerPool

// WorkerPool Пул воркеров, обрабатывающих задачи по ключу сессии.
type WorkerPool interface {
	Start(ctx context.Context)
	Stop()
	Submit(sessionKey string) bool
}

// SnapshotWorkerPool Пул воркеров, строящих и рассылающих снимки дашборда сессий.
type SnapshotWorkerPool struct {
	mu         sync.RWMutex
	stopped    bool
	tasks      chan string
	workerFunc func(ctx context.Context, sessionKey string)
	poolSize   int
	wg         sync.WaitGroup
}

func NewSnapshotWorkerPool(poolSize int, workerFunc func(ctx context.Context, sessionKey string)) *SnapshotWorkerPool {
	if poolSize <= 0 {
		poolSize = 1
	}

	return &SnapshotWorkerPool{
		tasks:      make(chan string, poolSize*20),
		poolSize:   poolSize,
		workerFunc: workerFunc,
	}
}

func (wp *SnapshotWorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.poolSize; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Stop Закрывает очередь и ждет завершения воркеров. Повторный вызов ничего не делает.
func (wp *SnapshotWorkerPool) Stop() {
	wp.mu.Lock()
	if !wp.stopped {
		wp.stopped = true
		close(wp.tasks)
	}
	wp.mu.Unlock()

	wp.wg.Wait()
}

// Submit Ставит задачу в очередь. Возвращает false, если очередь переполнена или пул остановлен.
func (wp *SnapshotWorkerPool) Submit(sessionKey string) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return false
	}

	select {
	case wp.tasks <- sessionKey:
		return true
	default:
		// очередь переполнена, пропускаем задачу
		return false
	}
}

func (wp *SnapshotWorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("Завершение работы воркера по контексту", logger.Int("snapshot_worker id", id))
			return
		case key, ok := <-wp.tasks:
			if !ok {
				logger.Log.Debug("Канал tasks для SnapshotWorkerPool закрыт. Завершение работы воркера", logger.Int("snapshot_worker id", id))
				return
			}

			wp.workerFunc(ctx, key)
		}
	}
}
