package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/trsv-dev/dpim-portal/internal/auth"
	"github.com/trsv-dev/dpim-portal/internal/broadcast"
	"github.com/trsv-dev/dpim-portal/internal/config"
	"github.com/trsv-dev/dpim-portal/internal/dataset"
	"github.com/trsv-dev/dpim-portal/internal/di_containers"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/router"
	"github.com/trsv-dev/dpim-portal/internal/server"
	"github.com/trsv-dev/dpim-portal/internal/session"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"github.com/trsv-dev/dpim-portal/internal/storage/memory"
	"github.com/trsv-dev/dpim-portal/internal/storage/postgres"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
	"github.com/trsv-dev/dpim-portal/internal/worker"
)

// "Сборка" и запуск проекта.
func main() {
	// recover для логирования паник в main
	defer func() {
		if r := recover(); r != nil {
			log.Println("Паника в main:", fmt.Sprintf("%v", r))
		}
	}()

	// загружаем переменные окружения из .env для локальной разработки
	if errEnv := godotenv.Load(".env"); errEnv != nil {
		log.Println("Не удалось загрузить .env:", errEnv)
	}

	srvConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logger.InitLogger(srvConfig.LogLevel, srvConfig.LogOutput)
	// отложенное закрытие ресурса (актуально если используется файл для логирования)
	defer logger.Log.(*logger.SlogAdapter).Close()

	appStorage, err := initStorage(srvConfig.DatabaseURI)
	if err != nil {
		logger.Log.Error("Не удалось инициировать хранилище", logger.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, done := context.WithCancel(context.Background())
	defer done()

	// демо-пользователи портала
	demoUsers, err := storage.DemoUsers(srvConfig.DemoPassword)
	if err != nil {
		logger.Log.Error("Не удалось подготовить демо-пользователей", logger.String("err", err.Error()))
		os.Exit(1)
	}

	if err = appStorage.EnsureUsers(ctx, demoUsers); err != nil {
		logger.Log.Error("Не удалось сохранить демо-пользователей", logger.String("err", err.Error()))
		os.Exit(1)
	}

	// набор серверов генерируется один раз и далее только читается
	ds := dataset.New(srvConfig.DatasetSize)
	dashboard := viewmodel.NewDashboard(ds.All(), srvConfig.ItemsPerPage)
	logger.Log.Info("Набор серверов сгенерирован",
		logger.Int("size", ds.Len()),
		logger.Int("items_per_page", dashboard.ItemsPerPage()))

	// состояния дашбордов сессий, "прогрев" по сессиям из хранилища
	viewStates := view_storage.NewViewStateCache(dashboard.NewViewState)
	if warmUpErr := view_storage.WarmUpViewStateCache(ctx, appStorage, viewStates); warmUpErr != nil {
		logger.Log.Error("Не удалось восстановить состояния сессий", logger.String("err", warmUpErr.Error()))
		os.Exit(1)
	}

	tokenBuilder := auth.NewJWTTokenBuilder()
	var broadcaster broadcast.Broadcaster

	if srvConfig.WebInterface {
		// SSE через r3labs/sse: каждая сессия получает снимки в свой топик session-<key>:dashboard
		broadcaster = broadcast.NewR3labsSSEAdapter(
			broadcast.MakeJWTTopicResolver(srvConfig.JWTSecretKey, tokenBuilder),
		)
	} else {
		broadcaster = broadcast.NewNoopAdapter(func(r *http.Request) (string, error) { return "noop", nil })
	}

	workersCtx, workersCtxCancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	var snapshotPool *worker.SnapshotWorkerPool
	var pool worker.WorkerPool

	if srvConfig.WebInterface {
		snapshotPool = worker.NewSnapshotWorkerPool(srvConfig.PoolSize,
			worker.NewSnapshotPublisher(dashboard, viewStates, broadcaster))
		snapshotPool.Start(workersCtx)
		pool = snapshotPool
	}

	handlersContainer := di_containers.NewHandlersContainer(di_containers.Dependencies{
		Config:       srvConfig,
		Storage:      appStorage,
		Sessions:     session.NewStorageStore(appStorage),
		ViewStates:   viewStates,
		Dataset:      ds,
		Dashboard:    dashboard,
		Broadcaster:  broadcaster,
		TokenBuilder: tokenBuilder,
		Pool:         pool,
	})

	loginLimit := router.LoginLimit{
		Rate:           rate.Limit(srvConfig.LoginRateLimit),
		Burst:          srvConfig.LoginRateBurst,
		TrustForwarded: srvConfig.TrustProxy,
	}

	srv, serverErrorCh := server.RunServer(srvConfig.RunAddress, handlersContainer, loginLimit)

	// воркер DashboardBroadcastWorker периодически ставит в пул рассылку снимков всех активных сессий
	if snapshotPool != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.DashboardBroadcastWorker(workersCtx, appStorage, viewStates, snapshotPool, srvConfig.BroadcastInterval)
		}()
	}

	// канал системных сигналов
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serverErrorCh:
		if !ok {
			logger.Log.Info("Канал ошибок сервера закрыт")
			return
		}
		logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
	case sig := <-stop:
		logger.Log.Info("Получен сигнал остановки приложения", logger.String("sig", sig.String()))
	}

	logger.Log.Info("Начало процедуры остановки приложения...")

	// останавливаем воркеры
	workersCtxCancel()

	workersDone := make(chan struct{})
	go func() {
		wg.Wait()
		if snapshotPool != nil {
			snapshotPool.Stop()
		}
		close(workersDone)
	}()

	select {
	case <-workersDone:
		logger.Log.Info("Воркеры остановлены")
	case <-time.After(5 * time.Second):
		logger.Log.Warn("Таймаут ожидания воркеров")
	}

	logger.Log.Info("Закрытие broadcaster...")
	if err = broadcaster.Close(); err != nil {
		logger.Log.Warn("Ошибка закрытия SSE адаптера", logger.String("err", err.Error()))
	}

	serverShutdownCtx, serverShutdownCancel := context.WithTimeout(context.Background(), 7*time.Second)
	defer serverShutdownCancel()

	if err = srv.Shutdown(serverShutdownCtx); err != nil {
		logger.Log.Error("Ошибка остановки сервера", logger.String("err", err.Error()))
	} else {
		logger.Log.Info("Сервер остановлен")
	}

	logger.Log.Info("Закрытие хранилища...")
	if err = appStorage.Close(); err != nil {
		logger.Log.Error("Ошибка закрытия хранилища", logger.String("err", err.Error()))
	}

	logger.Log.Info("Приложение завершено")
}

// initStorage PostgreSQL, если задан DATABASE_URI, иначе хранилище в памяти.
func initStorage(databaseURI string) (storage.Storage, error) {
	if databaseURI == "" {
		logger.Log.Info("DATABASE_URI не задан, сессии хранятся в памяти")
		return memory.InitStorage(), nil
	}

	pgStorage, err := postgres.InitStorage(databaseURI)
	if err != nil {
		return nil, err
	}

	return pgStorage, nil
}
