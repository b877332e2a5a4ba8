package server_handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/dataset"
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
)

// ServerHandler Обработчик запросов к набору серверов без сохранения состояния.
type ServerHandler struct {
	dataset   *dataset.Dataset
	dashboard *viewmodel.Dashboard
}

// NewServerHandler Конструктор ServerHandler.
func NewServerHandler(dataset *dataset.Dataset, dashboard *viewmodel.Dashboard) *ServerHandler {
	return &ServerHandler{
		dataset:   dataset,
		dashboard: dashboard,
	}
}

// GetServerList Страница серверов: GET /api/servers?status=&page=&page_size=.
func (h *ServerHandler) GetServerList(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r, h.dashboard.ItemsPerPage())
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = query.Validate(); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := models.ParseStatusFilter(query.Status)
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	page, ok := h.dashboard.Page(filter, query.Page, query.PageSize)
	if !ok {
		response.ErrorJSON(w, http.StatusBadRequest, "Страница вне диапазона")
		return
	}

	response.JSON(w, http.StatusOK, page)
}

// GetServer Сервер по идентификатору: GET /api/servers/{serverID}.
func (h *ServerHandler) GetServer(w http.ResponseWriter, r *http.Request) {
	creds := models.GetContextCreds(r.Context())

	record, err := h.dataset.Get(creds.RecordID)
	if err != nil {
		var ErrServerNotFound *errs.ErrServerNotFound
		if errors.As(err, &ErrServerNotFound) {
			logger.Log.Debug("Сервер не найден",
				logger.String("login", creds.Login),
				logger.String("id", ErrServerNotFound.ID))
			response.ErrorJSON(w, http.StatusNotFound, "Сервер не найден")
			return
		}

		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при получении информации о сервере")
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// Разбор параметров списка. Отсутствующие page и page_size заменяются значениями по умолчанию.
func parseListQuery(r *http.Request, defaultPageSize int) (models.ServerListQuery, error) {
	values := r.URL.Query()

	query := models.ServerListQuery{
		Status:   values.Get("status"),
		Page:     1,
		PageSize: defaultPageSize,
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, errors.New("Некорректный номер страницы")
		}
		query.Page = page
	}

	if raw := values.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return query, errors.New("Некорректный размер страницы")
		}
		query.PageSize = size
	}

	return query, nil
}
