package viewmodel

import "github.com/trsv-dev/dpim-portal/internal/models"

// DefaultItemsPerPage Размер страницы таблицы серверов по умолчанию.
const DefaultItemsPerPage = 10

// ViewState Выбор фильтра и страницы таблицы серверов одной сессии.
// Отфильтрованный список, окно страницы и число страниц не хранятся, а вычисляются заново.
type ViewState struct {
	StatusFilter models.StatusFilter `json:"statusFilter"`
	CurrentPage  int                 `json:"currentPage"`
	ItemsPerPage int                 `json:"itemsPerPage"`
}

// NewViewState Начальное состояние: все статусы, первая страница.
func NewViewState(itemsPerPage int) ViewState {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}

	return ViewState{
		StatusFilter: models.FilterAll,
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
	}
}

// SetFilter Смена фильтра. Страница всегда сбрасывается на первую,
// даже если количество отфильтрованных серверов не изменилось.
func (s *ViewState) SetFilter(filter models.StatusFilter) {
	s.StatusFilter = filter
	s.CurrentPage = 1
}

// SetPage Смена страницы. Номер вне [1, totalPages] отклоняется без изменения состояния.
func (s *ViewState) SetPage(page, totalPages int) bool {
	if page < 1 || page > totalPages {
		return false
	}

	s.CurrentPage = page
	return true
}
