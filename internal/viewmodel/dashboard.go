package viewmodel

import (
	"time"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// Dashboard Связывает неизменяемый набор серверов с размером страницы и обрабатывает
// события фронтенда (смена фильтра, смена страницы). Безопасен для конкурентного
// использования: сам Dashboard не изменяется, а ViewState принадлежит вызывающему.
type Dashboard struct {
	records      []models.ServerRecord
	itemsPerPage int
	now          func() time.Time
}

// NewDashboard Конструктор Dashboard.
func NewDashboard(records []models.ServerRecord, itemsPerPage int) *Dashboard {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}

	return &Dashboard{
		records:      records,
		itemsPerPage: itemsPerPage,
		now:          time.Now,
	}
}

// ItemsPerPage Размер страницы таблицы.
func (d *Dashboard) ItemsPerPage() int {
	return d.itemsPerPage
}

// NewViewState Начальное состояние таблицы для новой сессии.
func (d *Dashboard) NewViewState() ViewState {
	return NewViewState(d.itemsPerPage)
}

// OnFilterChange Обработка смены фильтра: фильтр меняется, страница сбрасывается на первую.
func (d *Dashboard) OnFilterChange(state *ViewState, filter models.StatusFilter) {
	state.SetFilter(filter)
}

// OnPageChange Обработка смены страницы. Возвращает false, если страница вне диапазона
// и состояние осталось прежним.
func (d *Dashboard) OnPageChange(state *ViewState, page int) bool {
	filtered := Filter(d.records, state.StatusFilter)
	return state.SetPage(page, TotalPages(len(filtered), state.ItemsPerPage))
}

// Snapshot Снимок дашборда для состояния state.
func (d *Dashboard) Snapshot(state ViewState) models.Snapshot {
	return Build(d.records, state, d.now())
}

// StatusOptions Варианты фильтра по статусу с количеством серверов по всему набору.
func (d *Dashboard) StatusOptions() []models.StatusOption {
	return StatusOptions(d.records)
}

// Page Страница серверов без сохранения состояния (для GET /api/servers).
// ok == false, если страница вне [1, totalPages].
func (d *Dashboard) Page(filter models.StatusFilter, page, pageSize int) (models.ServerPage, bool) {
	if pageSize <= 0 {
		pageSize = d.itemsPerPage
	}

	filtered := Filter(d.records, filter)
	totalPages := TotalPages(len(filtered), pageSize)

	if page < 1 || page > totalPages {
		return models.ServerPage{}, false
	}

	return models.ServerPage{
		Items:      Paginate(filtered, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}, true
}
