package models

import "time"

// AllStatusesLabel Подпись варианта "все статусы" в выпадающем списке фильтра.
const AllStatusesLabel = "ทั้งหมด"

// Ellipsis Маркер пропуска ("⋯") в списке видимых страниц пагинации.
const Ellipsis = 0

// Performance Оценка производительности по средней нагрузке.
type Performance string

const (
	PerformanceGood     Performance = "Good"
	PerformanceWarning  Performance = "Warning"
	PerformanceCritical Performance = "Critical"
)

// ServiceTypeCount Количество серверов одной категории.
type ServiceTypeCount struct {
	ServiceType ServiceType `json:"serviceType"`
	Count       int         `json:"count"`
}

// Aggregates Сводная статистика по набору серверов.
type Aggregates struct {
	Total                int                 `json:"total"`
	StatusCounts         map[Status]int      `json:"statusCounts"`
	ServiceTypeCounts    map[ServiceType]int `json:"serviceTypeCounts"`
	ServiceTypeBreakdown []ServiceTypeCount  `json:"serviceTypeBreakdown"`
	AverageLoad          int                 `json:"averageLoad"`
	OnlinePercentage     string              `json:"onlinePercentage"`
	Warnings             int                 `json:"warnings"`
	Performance          Performance         `json:"performance"`
}

// StatusOption Вариант выпадающего списка фильтра по статусу.
type StatusOption struct {
	Label string       `json:"label"`
	Value StatusFilter `json:"value"`
	Count int          `json:"count"`
}

// TrendPoint Точка графика тренда производительности.
type TrendPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Snapshot Состояние дашборда, отдаваемое фронтенду после каждого перехода ViewState.
type Snapshot struct {
	StatusFilter        StatusFilter   `json:"statusFilter"`
	CurrentPage         int            `json:"currentPage"`
	ItemsPerPage        int            `json:"itemsPerPage"`
	TotalPages          int            `json:"totalPages"`
	TotalItems          int            `json:"totalItems"`
	PageSlice           []ServerRecord `json:"pageSlice"`
	Aggregates          Aggregates     `json:"aggregates"`
	OverallStatusCounts map[Status]int `json:"overallStatusCounts"`
	VisiblePages        []int          `json:"visiblePages"`
	PerformanceTrend    []TrendPoint   `json:"performanceTrend"`
	GeneratedAt         time.Time      `json:"generatedAt"`
}

// ServerPage Страница серверов для запроса списка без сохранения состояния.
type ServerPage struct {
	Items      []ServerRecord `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	TotalItems int            `json:"totalItems"`
}
