package viewmodel

import "github.com/trsv-dev/dpim-portal/internal/models"

// DefaultMaxVisiblePages Количество кнопок страниц в пагинаторе (включая первую и последнюю).
const DefaultMaxVisiblePages = 5

// VisiblePages Номера страниц для кнопок пагинатора. Первая и последняя страницы видны всегда,
// вокруг текущей показывается окно, разрывы обозначаются models.Ellipsis.
func VisiblePages(current, total, maxVisible int) []int {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisiblePages
	}

	if total <= maxVisible {
		pages := make([]int, 0, max(total, 0))
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	half := maxVisible / 2

	var start, end int
	switch {
	case current <= half+1:
		start, end = 2, maxVisible-1
	case current >= total-half:
		start, end = total-maxVisible+2, total-1
	default:
		start, end = current-half+1, current+half-1
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, models.Ellipsis)
	}

	for i := start; i <= end; i++ {
		if i > 1 && i < total {
			pages = append(pages, i)
		}
	}

	if end < total-1 {
		pages = append(pages, models.Ellipsis)
	}

	return append(pages, total)
}
