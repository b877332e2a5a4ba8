// Package viewmodel Фильтрация, пагинация и агрегаты таблицы серверов дашборда.
// Все функции пакета чистые: не изменяют входные данные и не выполняют ввод-вывод.
package viewmodel

import "github.com/trsv-dev/dpim-portal/internal/models"

// Filter Серверы, подходящие под фильтр, в исходном порядке.
// Для FilterAll возвращается исходный срез без изменений.
func Filter(all []models.ServerRecord, filter models.StatusFilter) []models.ServerRecord {
	if filter.IsAll() {
		return all
	}

	filtered := make([]models.ServerRecord, 0, len(all)/len(models.Statuses)+1)
	for _, r := range all {
		if filter.Matches(r.Status) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// Paginate Окно [(page-1)*pageSize, min(page*pageSize, len)) отфильтрованного списка.
// Для страницы вне диапазона или неположительного размера страницы возвращается пустой срез.
func Paginate(filtered []models.ServerRecord, page, pageSize int) []models.ServerRecord {
	if page < 1 || pageSize <= 0 {
		return []models.ServerRecord{}
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []models.ServerRecord{}
	}

	end := min(start+pageSize, len(filtered))

	// емкость ограничена, чтобы append у вызывающего не перезаписал общий набор данных
	return filtered[start:end:end]
}

// TotalPages Количество страниц: ceil(filteredLen / pageSize), но не меньше 1.
// Пустой список состоит из одной пустой страницы, поэтому переход на страницу 1 всегда допустим.
func TotalPages(filteredLen, pageSize int) int {
	if pageSize <= 0 || filteredLen <= 0 {
		return 1
	}

	return (filteredLen + pageSize - 1) / pageSize
}
