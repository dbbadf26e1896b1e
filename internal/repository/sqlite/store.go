// Package sqlite - SQLite-хранилище счетов для локального запуска и тестов.
//
// Соединение одно, поэтому транзакции выполняются строго по очереди, а внутри
// транзакции все запросы обязаны идти через её ctx.
package sqlite

import (
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/repository/migrate"
	"casino_engine/internal/repository/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type Store struct {
	db        *sql.DB
	getter    *trmsql.CtxGetter
	txManager trm.Manager
}

// Open открывает файл БД и применяет встроенные миграции
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := migrate.Apply(ctx, db, migrations.SQLite(), sq.Question); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	m, err := manager.New(trmsql.NewDefaultFactory(db))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tx manager: %w", err)
	}
	return &Store{db: db, getter: trmsql.DefaultCtxGetter, txManager: m}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB { return s.db }
func (s *Store) TxManager() trm.Manager { return s.txManager }

func (s *Store) Accounts() repository.AccountRepository { return &accountRepo{s} }
func (s *Store) Transactions() repository.TransactionRepository { return &transactionRepo{s} }
func (s *Store) Outcomes() repository.OutcomeRepository { return &outcomeRepo{s} }
func (s *Store) Achievements() repository.AchievementRepository { return &achievementRepo{s} }

func (s *Store) conn(ctx context.Context) trmsql.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.db)
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// mapError: занятость и блокировки БД - конфликт, который можно повторить
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s", model.ErrConcurrencyConflict, sqliteErr.Error())
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
