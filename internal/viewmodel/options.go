package viewmodel

import (
	"fmt"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// trendLabels Подписи точек графика производительности (каждые 4 часа).
var trendLabels = []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00", "24:00"}

// trendOffsets Смещения точек графика относительно базового значения 100-averageLoad.
var trendOffsets = []int{-10, -5, 5, 0, 8, -3, 2}

// minTrendValue Нижняя граница значения на графике производительности.
const minTrendValue = 20

// StatusOptions Варианты выпадающего списка фильтра с количеством серверов по всему набору.
func StatusOptions(all []models.ServerRecord) []models.StatusOption {
	counts := CountStatuses(all)

	options := make([]models.StatusOption, 0, len(models.Statuses)+1)
	options = append(options, models.StatusOption{
		Label: fmt.Sprintf("%s (%d)", models.AllStatusesLabel, len(all)),
		Value: models.FilterAll,
		Count: len(all),
	})

	for _, s := range models.Statuses {
		options = append(options, models.StatusOption{
			Label: fmt.Sprintf("%s (%d)", s, counts[s]),
			Value: models.StatusFilter(s),
			Count: counts[s],
		})
	}

	return options
}

// PerformanceTrend Точки графика тренда производительности для средней нагрузки.
func PerformanceTrend(averageLoad int) []models.TrendPoint {
	base := 100 - averageLoad

	points := make([]models.TrendPoint, len(trendLabels))
	for i, label := range trendLabels {
		points[i] = models.TrendPoint{
			Label: label,
			Value: max(minTrendValue, base+trendOffsets[i]),
		}
	}

	return points
}
