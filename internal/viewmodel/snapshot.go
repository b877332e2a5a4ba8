package viewmodel

import (
	"time"

	"github.com/trsv-dev/dpim-portal/internal/models"
)

// Build Снимок дашборда для состояния state, вычисленный заново по полному набору all.
func Build(all []models.ServerRecord, state ViewState, now time.Time) models.Snapshot {
	filtered := Filter(all, state.StatusFilter)
	aggregates := Aggregate(filtered)
	totalPages := TotalPages(len(filtered), state.ItemsPerPage)

	return models.Snapshot{
		StatusFilter:        state.StatusFilter,
		CurrentPage:         state.CurrentPage,
		ItemsPerPage:        state.ItemsPerPage,
		TotalPages:          totalPages,
		TotalItems:          len(filtered),
		PageSlice:           Paginate(filtered, state.CurrentPage, state.ItemsPerPage),
		Aggregates:          aggregates,
		OverallStatusCounts: CountStatuses(all),
		VisiblePages:        VisiblePages(state.CurrentPage, totalPages, DefaultMaxVisiblePages),
		PerformanceTrend:    PerformanceTrend(aggregates.AverageLoad),
		GeneratedAt:         now.UTC(),
	}
}
