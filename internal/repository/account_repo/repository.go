package account_repo

import (
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/repository/pgsql"
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "accounts"
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

var columns = []string{
	colID, colName, colBalance, colTotalWon, colTotalLost,
	colGamesPlayed, colGamesWon, colCreatedAt, colLastDaily, colDailyStreak,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAccountRepository(dbc *pgxpool.Pool) repository.AccountRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Create - создаёт счёт, если его ещё нет (ON CONFLICT DO NOTHING)
func (r *repo) Create(ctx context.Context, a *model.Account) (bool, error) {
	query := pgsql.Builder.Insert(table).
		Columns(colID, colName, colBalance, colCreatedAt).
		Values(a.ID, a.Name, a.Balance, pgsql.ToMillis(a.CreatedAt)).
		Suffix("ON CONFLICT (" + colID + ") DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, pgsql.MapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

// Get - счёт по ID без блокировки
func (r *repo) Get(ctx context.Context, id int64) (*model.Account, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate - счёт по ID с блокировкой строки до конца транзакции
func (r *repo) GetForUpdate(ctx context.Context, id int64) (*model.Account, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *repo) get(ctx context.Context, id int64, suffix string) (*model.Account, error) {
	query := pgsql.Builder.Select(columns...).
		From(table).
		Where(sq.Eq{colID: id})
	if suffix != "" {
		query = query.Suffix(suffix)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		a         model.Account
		createdAt int64
		lastDaily *int64
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&a.ID, &a.Name, &a.Balance, &a.TotalWon, &a.TotalLost,
		&a.GamesPlayed, &a.GamesWon, &createdAt, &lastDaily, &a.DailyStreak,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, pgsql.MapError(err)
	}

	a.CreatedAt = pgsql.FromMillis(createdAt)
	if lastDaily != nil {
		t := pgsql.FromMillis(*lastDaily)
		a.LastDailyClaim = &t
	}
	return &a, nil
}

// Update - сохраняет баланс, статистику и состояние ежедневной награды
func (r *repo) Update(ctx context.Context, a *model.Account) error {
	var lastDaily *int64
	if a.LastDailyClaim != nil {
		ms := pgsql.ToMillis(*a.LastDailyClaim)
		lastDaily = &ms
	}

	query := pgsql.Builder.Update(table).
		Set(colName, a.Name).
		Set(colBalance, a.Balance).
		Set(colTotalWon, a.TotalWon).
		Set(colTotalLost, a.TotalLost).
		Set(colGamesPlayed, a.GamesPlayed).
		Set(colGamesWon, a.GamesWon).
		Set(colLastDaily, lastDaily).
		Set(colDailyStreak, a.DailyStreak).
		Where(sq.Eq{colID: a.ID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return pgsql.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
