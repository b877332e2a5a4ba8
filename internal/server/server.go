package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/di_containers"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/router"
)

// readHeaderTimeout Таймаут чтения заголовков. WriteTimeout не задается: SSE-соединения долгоживущие.
const readHeaderTimeout = 5 * time.Second

// NewServer Создание нового сервера.
func NewServer(runAddress string, handlers *di_containers.HandlersContainer, loginLimit router.LoginLimit) *http.Server {
	mux := router.Router(handlers, loginLimit)

	server := &http.Server{
		Addr:              runAddress,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return server
}

// RunServer Запускает сервер в горутине и возвращает сам сервер и канал ошибок.
func RunServer(runAddress string, handlers *di_containers.HandlersContainer, loginLimit router.LoginLimit) (*http.Server, chan error) {
	server := NewServer(runAddress, handlers, loginLimit)

	// канал ошибок сервера
	serverErrorCh := make(chan error, 1)

	go func() {
		defer close(serverErrorCh)

		logger.Log.Info("Сервер запущен", logger.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
			serverErrorCh <- err
		}
	}()

	return server, serverErrorCh
}
