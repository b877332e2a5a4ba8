package dataset

import (
	"math"
	"time"

	"github.com/trsv-dev/dpim-portal/internal/models"
	"github.com/trsv-dev/dpim-portal/internal/utils"
)

// Множители зерна для независимых значений одного порядкового номера.
const (
	serviceTypeSeed = 7
	statusSeed      = 11
	loadSeed        = 13
	minutesSeed     = 17

	minutesPerDay = 1440
)

// BaseTime Начало суток, в пределах которых распределено время последнего обновления серверов.
var BaseTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Seeded Детерминированное псевдослучайное значение в [0, 1): дробная часть sin(seed) * 10000.
// Используется только для воспроизводимых данных, не для криптографии.
func Seeded(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// Generate Генерация n серверов с порядковыми номерами 1..n.
// Один и тот же n всегда дает одну и ту же последовательность. При n <= 0 возвращается пустой срез.
func Generate(n int) []models.ServerRecord {
	if n <= 0 {
		return []models.ServerRecord{}
	}

	records := make([]models.ServerRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, Record(i))
	}

	return records
}

// Record Сервер с порядковым номером seq.
func Record(seq int) models.ServerRecord {
	i := float64(seq)

	serviceType := models.ServiceTypes[index(Seeded(i*serviceTypeSeed), len(models.ServiceTypes))]
	status := models.Statuses[index(Seeded(i*statusSeed), len(models.Statuses))]
	load := index(Seeded(i*loadSeed), 100)
	minutes := index(Seeded(i*minutesSeed), minutesPerDay)

	id := utils.FormatRecordID(seq)

	return models.ServerRecord{
		ID:          id,
		Name:        id,
		ServiceType: serviceType,
		Status:      status,
		Load:        load,
		LoadLevel:   models.LoadLevelOf(load),
		LastUpdate:  BaseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

// floor(r * size), ограниченный диапазоном [0, size).
func index(r float64, size int) int {
	idx := int(math.Floor(r * float64(size)))

	if idx < 0 {
		return 0
	}
	if idx >= size {
		return size - 1
	}

	return idx
}
