package dashboard_handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/view_storage"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
	"github.com/trsv-dev/dpim-portal/internal/worker"
)

// HeaderIsUpdated Заголовок ответа на смену страницы: false, если переход отклонен.
const HeaderIsUpdated = "X-Is-Updated"

// DashboardHandler Обработчик событий дашборда. Состояние таблицы хранится per-session в viewStates.
type DashboardHandler struct {
	dashboard  *viewmodel.Dashboard
	viewStates view_storage.ViewStateStorage
	pool       worker.WorkerPool
}

// NewDashboardHandler Конструктор DashboardHandler.
// pool может быть nil: тогда снимки после переходов по SSE не рассылаются.
func NewDashboardHandler(dashboard *viewmodel.Dashboard, viewStates view_storage.ViewStateStorage, pool worker.WorkerPool) *DashboardHandler {
	return &DashboardHandler{
		dashboard:  dashboard,
		viewStates: viewStates,
		pool:       pool,
	}
}

// GetDashboard Снимок дашборда для текущего состояния сессии.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	creds := models.GetContextCreds(r.Context())

	state := h.viewStates.Apply(creds.SessionKey, nil)

	response.JSON(w, http.StatusOK, h.dashboard.Snapshot(state))
}

// SetFilter Смена фильтра по статусу (страница сбрасывается на первую).
func (h *DashboardHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	creds := models.GetContextCreds(r.Context())

	var req models.FilterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		var ErrInvalidStatus *errs.ErrInvalidStatus
		if errors.As(err, &ErrInvalidStatus) {
			response.ErrorJSON(w, http.StatusBadRequest, ErrInvalidStatus.Error())
			return
		}

		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	state := h.viewStates.Apply(creds.SessionKey, func(state *viewmodel.ViewState) {
		h.dashboard.OnFilterChange(state, filter)
	})

	logger.Log.Debug("Смена фильтра дашборда",
		logger.String("login", creds.Login),
		logger.String("filter", filter.String()))

	h.notify(creds.SessionKey)
	response.JSON(w, http.StatusOK, h.dashboard.Snapshot(state))
}

// SetPage Смена страницы. Страница вне диапазона не меняет состояние, X-Is-Updated: false.
func (h *DashboardHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	creds := models.GetContextCreds(r.Context())

	var req models.PageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	page := *req.Page

	var updated bool
	state := h.viewStates.Apply(creds.SessionKey, func(state *viewmodel.ViewState) {
		updated = h.dashboard.OnPageChange(state, page)
	})

	if updated {
		h.notify(creds.SessionKey)
	} else {
		logger.Log.Debug("Страница вне диапазона",
			logger.String("login", creds.Login),
			logger.Int("page", page))
	}

	w.Header().Set(HeaderIsUpdated, strconv.FormatBool(updated))
	response.JSON(w, http.StatusOK, h.dashboard.Snapshot(state))
}

// GetStatusOptions Варианты выпадающего списка фильтра.
func (h *DashboardHandler) GetStatusOptions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.dashboard.StatusOptions())
}

// Постановка рассылки снимка по SSE в очередь (другие вкладки той же сессии).
func (h *DashboardHandler) notify(sessionKey string) {
	if h.pool == nil {
		return
	}

	if !h.pool.Submit(sessionKey) {
		logger.Log.Debug("Очередь рассылки снимков заполнена", logger.String("key", sessionKey))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Error("Ошибка чтения тела запроса", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка чтения тела запроса")
		return false
	}

	if err = json.Unmarshal(body, dst); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return false
	}

	return true
}
