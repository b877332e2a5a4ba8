// Package migrations SQL-миграции БД PostgreSQL, встроенные в бинарный файл.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
