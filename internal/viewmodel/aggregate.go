package viewmodel

import (
	"fmt"
	"math"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// chartServiceTypes Количество категорий в круговой диаграмме дашборда.
const chartServiceTypes = 6

// Aggregate Сводная статистика по набору серверов.
func Aggregate(records []models.ServerRecord) models.Aggregates {
	statusCounts := CountStatuses(records)
	typeCounts := make(map[models.ServiceType]int)
	breakdown := make([]models.ServiceTypeCount, 0, len(models.ServiceTypes))
	position := make(map[models.ServiceType]int)

	loadSum := 0
	for _, r := range records {
		loadSum += r.Load
		typeCounts[r.ServiceType]++

		// порядок категорий - порядок первого появления в наборе
		if i, ok := position[r.ServiceType]; ok {
			breakdown[i].Count++
		} else {
			position[r.ServiceType] = len(breakdown)
			breakdown = append(breakdown, models.ServiceTypeCount{ServiceType: r.ServiceType, Count: 1})
		}
	}

	if len(breakdown) > chartServiceTypes {
		breakdown = breakdown[:chartServiceTypes]
	}

	total := len(records)
	averageLoad := 0
	onlinePercentage := "0.0"

	if total > 0 {
		averageLoad = int(math.Round(float64(loadSum) / float64(total)))
		onlinePercentage = formatPercent(float64(statusCounts[models.StatusNormal]) / float64(total) * 100)
	}

	return models.Aggregates{
		Total:                total,
		StatusCounts:         statusCounts,
		ServiceTypeCounts:    typeCounts,
		ServiceTypeBreakdown: breakdown,
		AverageLoad:          averageLoad,
		OnlinePercentage:     onlinePercentage,
		Warnings:             statusCounts[models.StatusCritical] + statusCounts[models.StatusWarning],
		Performance:          PerformanceOf(averageLoad),
	}
}

// formatPercent Процент с одним знаком после запятой, половина округляется вверх (31.25 -> "31.3").
// Сам "%.1f" округляет половину до четного.
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f", math.Floor(v*10+0.5)/10)
}

// CountStatuses Количество серверов по каждому из пяти статусов (отсутствующие статусы - 0).
func CountStatuses(records []models.ServerRecord) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}

	for _, r := range records {
		counts[r.Status]++
	}

	return counts
}

// PerformanceOf Оценка производительности по средней нагрузке.
func PerformanceOf(averageLoad int) models.Performance {
	switch {
	case averageLoad > 80:
		return models.PerformanceCritical
	case averageLoad > 60:
		return models.PerformanceWarning
	default:
		return models.PerformanceGood
	}
}
