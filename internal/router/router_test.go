package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/auth"
	"github.com/trsv-dev/dpim-portal/internal/broadcast"
	"github.com/trsv-dev/dpim-portal/internal/config"
	"github.com/trsv-dev/dpim-portal/internal/dataset"
	"github.com/trsv-dev/dpim-portal/internal/di_containers"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/session"
	"github.com/trsv-dev/dpim-portal/internal/storage"
	"github.com/trsv-dev/dpim-portal/internal/storage/memory"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
)

const (
	testSecret   = "router-test-secret"
	demoPassword = "dpim1234"
)

func init() {
	logger.InitLogger("error", "stdout")
}

type testApp struct {
	router     chi.Router
	viewStates *view_storage.ViewStateCache
}

func newTestApp(t *testing.T, loginLimit LoginLimit) *testApp {
	t.Helper()

	mem := memory.InitStorage()
	users, err := storage.DemoUsers(demoPassword)
	require.NoError(t, err)
	require.NoError(t, mem.EnsureUsers(context.Background(), users))

	ds := dataset.New(250)
	dashboard := viewmodel.NewDashboard(ds.All(), 10)
	viewStates := view_storage.NewViewStateCache(dashboard.NewViewState)
	tokenBuilder := auth.NewJWTTokenBuilder()

	container := di_containers.NewHandlersContainer(di_containers.Dependencies{
		Config:       &config.Config{JWTSecretKey: testSecret},
		Storage:      mem,
		Sessions:     session.NewStorageStore(mem),
		ViewStates:   viewStates,
		Dataset:      ds,
		Dashboard:    dashboard,
		Broadcaster:  broadcast.NewNoopAdapter(broadcast.MakeJWTTopicResolver(testSecret, tokenBuilder)),
		TokenBuilder: tokenBuilder,
	})

	return &testApp{
		router:     Router(container, loginLimit),
		viewStates: viewStates,
	}
}

func (a *testApp) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, r)

	return w
}

func (a *testApp) login(t *testing.T, username string) (*http.Cookie, response.AuthResponse) {
	t.Helper()

	w := a.do(http.MethodPost, "/api/auth/login", `{"username":"`+username+`","password":"`+demoPassword+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	return cookies[0], resp
}

func defaultLimit() LoginLimit {
	return LoginLimit{Rate: 100, Burst: 100}
}

// TestRouterDashboardFlow Проверяет сценарий: вход, фильтр Critical, переход по страницам, выход.
func TestRouterDashboardFlow(t *testing.T) {
	app := newTestApp(t, defaultLimit())

	cookie, authResp := app.login(t, "operator")
	assert.Equal(t, "operator", authResp.User.Username)
	assert.Equal(t, []string{models.PermissionRead, models.PermissionWrite}, authResp.User.Permissions)

	w := app.do(http.MethodGet, "/api/dashboard", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodPost, "/api/dashboard/filter", `{"status":"Critical"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, 42, snapshot.TotalItems)
	assert.Equal(t, 5, snapshot.TotalPages)
	assert.Equal(t, 49, snapshot.Aggregates.AverageLoad)

	w = app.do(http.MethodPost, "/api/dashboard/page", `{"page":2}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Is-Updated"))

	w = app.do(http.MethodPost, "/api/dashboard/page", `{"page":9}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Header().Get("X-Is-Updated"))

	state, ok := app.viewStates.Get(authResp.Key)
	require.True(t, ok)
	assert.Equal(t, 2, state.CurrentPage)
	assert.Equal(t, models.StatusFilter(models.StatusCritical), state.StatusFilter)

	w = app.do(http.MethodGet, "/api/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), authResp.Key)

	w = app.do(http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// токен еще валиден, но сессии больше нет
	w = app.do(http.MethodGet, "/api/dashboard", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, ok = app.viewStates.Get(authResp.Key)
	assert.False(t, ok)
}

// TestRouterSessionsAreIsolated Проверяет, что состояние дашборда у каждой сессии свое.
func TestRouterSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t, defaultLimit())

	adminCookie, _ := app.login(t, "admin")
	viewerCookie, viewer := app.login(t, "viewer")

	w := app.do(http.MethodPost, "/api/dashboard/filter", `{"status":"Maintenance"}`, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/dashboard", "", viewerCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, models.FilterAll, snapshot.StatusFilter)
	assert.Equal(t, 250, snapshot.TotalItems)
	assert.Equal(t, "viewer", viewer.User.Username)
}

// TestRouterServers Проверяет маршруты набора серверов.
func TestRouterServers(t *testing.T) {
	app := newTestApp(t, defaultLimit())
	cookie, _ := app.login(t, "viewer")

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"список", "/api/servers?status=Critical&page=2", http.StatusOK},
		{"страница вне диапазона", "/api/servers?status=Critical&page=6", http.StatusBadRequest},
		{"сервер по id", "/api/servers/SRV-DPIM-14", http.StatusOK},
		{"неизвестный сервер", "/api/servers/SRV-DPIM-999", http.StatusNotFound},
		{"неверный формат id", "/api/servers/server-14", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(http.MethodGet, tt.target, "", cookie)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

// TestRouterPrivateRoutesRequireAuth Проверяет, что приватные маршруты недоступны без токена.
func TestRouterPrivateRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t, defaultLimit())

	for _, target := range []string{"/api/dashboard", "/api/dashboard/status-options", "/api/servers", "/api/auth/session"} {
		w := app.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}

	w := app.do(http.MethodGet, "/api/dashboard", "", &http.Cookie{Name: auth.CookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRouterHealth Проверяет публичный маршрут проверки состояния.
func TestRouterHealth(t *testing.T) {
	app := newTestApp(t, defaultLimit())

	w := app.do(http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

// TestRouterLoginRateLimit Проверяет ограничение частоты попыток входа.
func TestRouterLoginRateLimit(t *testing.T) {
	app := newTestApp(t, LoginLimit{Rate: 0.001, Burst: 2})

	body := `{"username":"admin","password":"wrong-password"}`

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/api/auth/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/api/auth/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(http.MethodPost, "/api/auth/login", body).Code)
}

// TestRouterLoginRateLimitForwardedFor Подмена X-Forwarded-For не обходит ограничение попыток входа.
func TestRouterLoginRateLimitForwardedFor(t *testing.T) {
	app := newTestApp(t, LoginLimit{Rate: 0.001, Burst: 2})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"username":"admin","password":"wrong-password"}`))
		r.RemoteAddr = "10.0.0.1:1000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))

		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}
