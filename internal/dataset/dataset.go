package dataset

import (
	"github.com/trsv-dev/dpim-portal/internal/errs"
	"github.com/trsv-dev/dpim-portal/internal/models"
)

// Dataset Неизменяемый набор серверов, сгенерированный один раз при старте.
type Dataset struct {
	records []models.ServerRecord
	byID    map[string]int
}

// New Генерация набора из n серверов.
func New(n int) *Dataset {
	records := Generate(n)

	byID := make(map[string]int, len(records))
	for i, r := range records {
		byID[r.ID] = i
	}

	return &Dataset{
		records: records,
		byID:    byID,
	}
}

// All Все серверы в порядке генерации. Срез общий для всех вызывающих и не должен изменяться.
func (d *Dataset) All() []models.ServerRecord {
	return d.records
}

// Len Количество серверов в наборе.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Get Поиск сервера по идентификатору.
func (d *Dataset) Get(id string) (models.ServerRecord, error) {
	i, ok := d.byID[id]
	if !ok {
		return models.ServerRecord{}, errs.NewErrServerNotFound(id, nil)
	}

	return d.records[i], nil
}
