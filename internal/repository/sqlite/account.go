package sqlite

import (
	"casino_engine/internal/model"
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

const (
	accountsTable  = "accounts"
	colID          = "id"
	colName        = "name"
	colBalance     = "balance"
	colTotalWon    = "total_won"
	colTotalLost   = "total_lost"
	colGamesPlayed = "games_played"
	colGamesWon    = "games_won"
	colCreatedAt   = "created_at"
	colLastDaily   = "last_daily_claim"
	colDailyStreak = "daily_streak"
)

type accountRepo struct {
	s *Store
}

func (r *accountRepo) Create(ctx context.Context, a *model.Account) (bool, error) {
	sqlStr, args, err := builder.Insert(accountsTable).
		Columns(colID, colName, colBalance, colCreatedAt).
		Values(a.ID, a.Name, a.Balance, toMillis(a.CreatedAt)).
		Suffix("ON CONFLICT (" + colID + ") DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := r.s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *accountRepo) Get(ctx context.Context, id int64) (*model.Account, error) {
	sqlStr, args, err := builder.Select(
		colID, colName, colBalance, colTotalWon, colTotalLost,
		colGamesPlayed, colGamesWon, colCreatedAt, colLastDaily, colDailyStreak,
	).From(accountsTable).Where(sq.Eq{colID: id}).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		a         model.Account
		createdAt int64
		lastDaily sql.NullInt64
	)
	err = r.s.conn(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(
		&a.ID, &a.Name, &a.Balance, &a.TotalWon, &a.TotalLost,
		&a.GamesPlayed, &a.GamesWon, &createdAt, &lastDaily, &a.DailyStreak,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	a.CreatedAt = fromMillis(createdAt)
	if lastDaily.Valid {
		t := fromMillis(lastDaily.Int64)
		a.LastDailyClaim = &t
	}
	return &a, nil
}

// GetForUpdate: строк SQLite не блокирует, запись сериализуется единственным соединением
func (r *accountRepo) GetForUpdate(ctx context.Context, id int64) (*model.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepo) Update(ctx context.Context, a *model.Account) error {
	var lastDaily sql.NullInt64
	if a.LastDailyClaim != nil {
		lastDaily = sql.NullInt64{Int64: toMillis(*a.LastDailyClaim), Valid: true}
	}
	sqlStr, args, err := builder.Update(accountsTable).
		Set(colName, a.Name).
		Set(colBalance, a.Balance).
		Set(colTotalWon, a.TotalWon).
		Set(colTotalLost, a.TotalLost).
		Set(colGamesPlayed, a.GamesPlayed).
		Set(colGamesWon, a.GamesWon).
		Set(colLastDaily, lastDaily).
		Set(colDailyStreak, a.DailyStreak).
		Where(sq.Eq{colID: a.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
