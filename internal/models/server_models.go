package models

import (
	"strings"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/errs"
)

// ServiceType Категория сервиса, который обслуживает сервер.
type ServiceType string

const (
	ServiceTypeActiveDirectory ServiceType = "ACTIVE DIRECTORY"
	ServiceTypeCloudDatabase   ServiceType = "CLOUD DATABASE"
	ServiceTypeWebServer       ServiceType = "WEB SERVER"
	ServiceTypeFileServer      ServiceType = "FILE SERVER"
	ServiceTypeMailServer      ServiceType = "MAIL SERVER"
	ServiceTypeDNSServer       ServiceType = "DNS SERVER"
	ServiceTypeBackupServer    ServiceType = "BACKUP SERVER"
	ServiceTypeMonitoring      ServiceType = "MONITORING"
)

// ServiceTypes Все категории сервисов. Порядок важен: генератор выбирает категорию по индексу.
var ServiceTypes = []ServiceType{
	ServiceTypeActiveDirectory,
	ServiceTypeCloudDatabase,
	ServiceTypeWebServer,
	ServiceTypeFileServer,
	ServiceTypeMailServer,
	ServiceTypeDNSServer,
	ServiceTypeBackupServer,
	ServiceTypeMonitoring,
}

// String Стрингер для ServiceType.
func (st ServiceType) String() string {
	return string(st)
}

// Status Статус сервера.
type Status string

const (
	StatusNormal      Status = "Normal"
	StatusWarning     Status = "Warning"
	StatusHighLoad    Status = "High Load"
	StatusCritical    Status = "Critical"
	StatusMaintenance Status = "Maintenance"
)

// Statuses Все статусы сервера. Порядок важен: генератор выбирает статус по индексу.
var Statuses = []Status{
	StatusNormal,
	StatusWarning,
	StatusHighLoad,
	StatusCritical,
	StatusMaintenance,
}

// IsValid Валидация статуса.
func (s Status) IsValid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusHighLoad, StatusCritical, StatusMaintenance:
		return true
	default:
		return false
	}
}

// String Стрингер для Status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus Разбор статуса из строки без учета регистра, пробелов и подчеркиваний
// ("High Load", "HighLoad", "high_load" дают StatusHighLoad).
func ParseStatus(value string) (Status, error) {
	normalized := normalizeStatus(value)

	for _, s := range Statuses {
		if normalizeStatus(string(s)) == normalized {
			return s, nil
		}
	}

	return "", errs.NewErrInvalidStatus(value)
}

func normalizeStatus(value string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(value)))
}

// StatusFilter Фильтр таблицы серверов: либо FilterAll, либо конкретный статус.
type StatusFilter string

// FilterAll Фильтр, пропускающий все серверы.
const FilterAll StatusFilter = "All"

// ParseStatusFilter Разбор фильтра: пустая строка и "All" (в любом регистре) означают FilterAll.
func ParseStatusFilter(value string) (StatusFilter, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, string(FilterAll)) || trimmed == AllStatusesLabel {
		return FilterAll, nil
	}

	status, err := ParseStatus(trimmed)
	if err != nil {
		return "", err
	}

	return StatusFilter(status), nil
}

// IsAll Сообщает, что фильтр пропускает все серверы.
func (f StatusFilter) IsAll() bool {
	return f == FilterAll
}

// Matches Проверяет, проходит ли статус через фильтр.
func (f StatusFilter) Matches(s Status) bool {
	return f.IsAll() || Status(f) == s
}

// String Стрингер для StatusFilter.
func (f StatusFilter) String() string {
	return string(f)
}

// LoadLevel Уровень нагрузки сервера, используется для окраски индикатора нагрузки.
type LoadLevel string

const (
	LoadLevelNormal LoadLevel = "normal"
	LoadLevelMedium LoadLevel = "medium"
	LoadLevelHigh   LoadLevel = "high"
)

// LoadLevelOf Уровень нагрузки: выше 80 - high, выше 60 - medium, иначе normal.
func LoadLevelOf(load int) LoadLevel {
	switch {
	case load > 80:
		return LoadLevelHigh
	case load > 60:
		return LoadLevelMedium
	default:
		return LoadLevelNormal
	}
}

// ServerRecord Модель сервера в синтетическом наборе данных дашборда.
// Создается генератором один раз и далее не изменяется.
type ServerRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ServiceType ServiceType `json:"serviceType"`
	Status      Status      `json:"status"`
	Load        int         `json:"load"`
	LoadLevel   LoadLevel   `json:"loadLevel"`
	LastUpdate  time.Time   `json:"lastUpdate"`
}
