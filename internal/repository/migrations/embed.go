// Package migrations - схемы БД для Postgres и SQLite
package migrations

import "embed"

//go:embed postgres/*.sql
var postgres embed.FS

//go:embed sqlite/*.sql
var sqlite embed.FS
