package router

import (
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/trsv-dev/dpim-portal/internal/di_containers"
	"github.com/trsv-dev/dpim-portal/internal/middleware"
)

// LoginLimit Ограничение частоты попыток входа с одного адреса.
type LoginLimit struct {
	Rate  rate.Limit
	Burst int
	// TrustForwarded Адрес клиента берется из X-Forwarded-For (только за доверенным прокси).
	TrustForwarded bool
}

// Router Роутер.
func Router(h *di_containers.HandlersContainer, loginLimit LoginLimit) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.LogMiddleware)
	router.Use(middleware.CorsMiddleware)

	sessionToContext := middleware.SessionToContextMiddleware(h.JWTSecretKey, h.TokenBuilder, h.Sessions)
	loginLimiter := middleware.NewRateLimiter(loginLimit.Rate, loginLimit.Burst, loginLimit.TrustForwarded)

	// публичные маршруты
	router.Get("/api/health", h.HealthHandler.GetHealth)
	router.With(loginLimiter.Middleware).Post("/api/auth/login", h.AuthorizationHandler.UserAuthorization)

	// SSE: тему подписки определяет брокер по токену запроса
	router.Get("/events", h.AppHandler.Events)

	// маршруты, требующие авторизацию
	router.Group(func(r chi.Router) {
		r.Use(sessionToContext)
		r.Use(middleware.RequireAuthMiddleware)

		r.Post("/api/auth/logout", h.AuthorizationHandler.UserLogout)
		r.Get("/api/auth/session", h.AuthorizationHandler.GetSession)

		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/", h.DashboardHandler.GetDashboard)
			r.Post("/filter", h.DashboardHandler.SetFilter)
			r.Post("/page", h.DashboardHandler.SetPage)
			r.Get("/status-options", h.DashboardHandler.GetStatusOptions)
		})

		r.Route("/api/servers", func(r chi.Router) {
			r.Get("/", h.ServerHandler.GetServerList)

			// извлекаем ID из параметров роутера
			r.With(middleware.ParseRecordIDMiddleware).Get("/{serverID}", h.ServerHandler.GetServer)
		})
	})

	return router
}
