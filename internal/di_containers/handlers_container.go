package di_containers

import (
	"github.com/trsv-dev/dpim-portal/internal/api/app_handler"
	"github.com/trsv-dev/dpim-portal/internal/api/authorization_handler"
	"github.com/trsv-dev/dpim-portal/internal/api/dashboard_handler"
	"github.com/trsv-dev/dpim-portal/internal/api/health_handler"
	"github.com/trsv-dev/dpim-portal/internal/api/server_handler"
	"github.com/trsv-dev/dpim-portal/internal/auth"
	"github.com/trsv-dev/dpim-portal/internal/broadcast"
	"github.com/trsv-dev/dpim-portal/internal/config"
	"github.com/trsv-dev/dpim-portal/internal/dataset"
	"github.com/trsv-dev/dpim-portal/internal/session"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
	"github.com/trsv-dev/dpim-portal/internal/worker"
)

// HandlersContainer Контейнер со всеми хендлерами приложения (и их зависимостями).
type HandlersContainer struct {
	AuthorizationHandler *authorization_handler.AuthorizationHandler
	DashboardHandler     *dashboard_handler.DashboardHandler
	ServerHandler        *server_handler.ServerHandler
	HealthHandler        *health_handler.HealthHandler
	AppHandler           *app_handler.AppHandler

	// зависимости middleware
	JWTSecretKey string
	TokenBuilder auth.TokenBuilder
	Sessions     session.Store
}

// Dependencies Зависимости, из которых собираются хендлеры.
type Dependencies struct {
	Config       *config.Config
	Storage      storage.Storage
	Sessions     session.Store
	ViewStates   view_storage.ViewStateStorage
	Dataset      *dataset.Dataset
	Dashboard    *viewmodel.Dashboard
	Broadcaster  broadcast.Broadcaster
	TokenBuilder auth.TokenBuilder
	// Pool может быть nil, если web-интерфейс выключен.
	Pool worker.WorkerPool
}

// NewHandlersContainer Конструктор контейнера с зависимостями для хендлеров.
func NewHandlersContainer(deps Dependencies) *HandlersContainer {
	cfg := deps.Config

	return &HandlersContainer{
		AuthorizationHandler: authorization_handler.NewAuthorizationHandler(
			deps.Storage, deps.Sessions, deps.ViewStates, deps.TokenBuilder, cfg.JWTSecretKey),
		DashboardHandler: dashboard_handler.NewDashboardHandler(deps.Dashboard, deps.ViewStates, deps.Pool),
		ServerHandler:    server_handler.NewServerHandler(deps.Dataset, deps.Dashboard),
		HealthHandler:    health_handler.NewHealthHandler(deps.Storage),
		AppHandler:       app_handler.NewAppHandler(cfg.JWTSecretKey, deps.Broadcaster),

		JWTSecretKey: cfg.JWTSecretKey,
		TokenBuilder: deps.TokenBuilder,
		Sessions:     deps.Sessions,
	}
}
