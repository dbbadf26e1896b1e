package achievement_repo

import (
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/repository/pgsql"
	"context"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "achievement_unlocks"
	colAccountID  = "account_id"
	colKey        = "achievement_key"
	colUnlockedAt = "unlocked_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAchievementRepository(dbc *pgxpool.Pool) repository.AchievementRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Unlock - вставка с защитой уникальным ключом (account_id, achievement_key)
func (r *repo) Unlock(ctx context.Context, u *model.AchievementUnlock) error {
	query := pgsql.Builder.Insert(table).
		Columns(colAccountID, colKey, colUnlockedAt).
		Values(u.AccountID, u.Key, pgsql.ToMillis(u.UnlockedAt)).
		Suffix("ON CONFLICT (" + colAccountID + ", " + colKey + ") DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		if pgsql.IsUniqueViolation(err) {
			return model.ErrAlreadyUnlocked
		}
		return pgsql.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyUnlocked
	}
	return nil
}

func (r *repo) ListByAccount(ctx context.Context, accountID int64) ([]model.AchievementUnlock, error) {
	query := pgsql.Builder.Select(colAccountID, colKey, colUnlockedAt).
		From(table).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colUnlockedAt, colKey)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, pgsql.MapError(err)
	}
	defer rows.Close()

	var out []model.AchievementUnlock
	for rows.Next() {
		var (
			u  model.AchievementUnlock
			ms int64
		)
		if err := rows.Scan(&u.AccountID, &u.Key, &ms); err != nil {
			return nil, err
		}
		u.UnlockedAt = pgsql.FromMillis(ms)
		out = append(out, u)
	}
	return out, rows.Err()
}
