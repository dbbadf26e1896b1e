// Package migrate применяет встроенные SQL-миграции, каждую не более одного раза
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	table      = "schema_migrations"
	colName    = "name"
	colApplied = "applied_at"

	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Apply выполняет *.sql из fsys в лексикографическом порядке.
// ph - формат плейсхолдеров драйвера (sq.Dollar для Postgres, sq.Question для SQLite)
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, ph sq.PlaceholderFormat) ([]string, error) {
	if db == nil {
		return nil, errors.New("sql db is required")
	}
	builder := sq.StatementBuilder.PlaceholderFormat(ph)

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s TEXT PRIMARY KEY, %s BIGINT NOT NULL)`,
		table, colName, colApplied)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, file := range files {
		done, err := isApplied(ctx, db, builder, file)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}
		up := UpSection(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		if err := applyOne(ctx, db, builder, file, up); err != nil {
			return applied, err
		}
		applied = append(applied, file)
	}
	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, builder sq.StatementBuilderType, file, up string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx, up); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec migration %s: %w", file, err)
	}

	sqlStr, args, err := builder.Insert(table).
		Columns(colName, colApplied).
		Values(file, time.Now().UTC().UnixMilli()).
		ToSql()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}
	return nil
}

// UpSection - SQL между маркерами Up и Down. Без маркеров - весь файл
func UpSection(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

func isApplied(ctx context.Context, db *sql.DB, builder sq.StatementBuilderType, name string) (bool, error) {
	sqlStr, args, err := builder.Select("1").From(table).Where(sq.Eq{colName: name}).ToSql()
	if err != nil {
		return false, err
	}
	var found int
	err = db.QueryRowContext(ctx, sqlStr, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
