package outcome_repo

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
	table        = "game_outcomes"
	colID        = "id"
	colAccountID = "account_id"
	colGame      = "game"
	colBet       = "bet_amount"
	colResult    = "result"
	colNetChange = "net_change"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewOutcomeRepository(dbc *pgxpool.Pool) repository.OutcomeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) Create(ctx context.Context, o *model.GameOutcome) error {
	query := pgsql.Builder.Insert(table).
		Columns(colAccountID, colGame, colBet, colResult, colNetChange, colCreatedAt).
		Values(o.AccountID, string(o.Game), o.BetAmount, string(o.Result), o.NetChange, pgsql.ToMillis(o.CreatedAt)).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&o.ID)
	return pgsql.MapError(err)
}

func (r *repo) ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.GameOutcome, error) {
	query := pgsql.Builder.Select(colID, colAccountID, colGame, colBet, colResult, colNetChange, colCreatedAt).
		From(table).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, pgsql.MapError(err)
	}
	defer rows.Close()

	var out []model.GameOutcome
	for rows.Next() {
		var (
			o            model.GameOutcome
			game, result string
			createdAt    int64
		)
		if err := rows.Scan(&o.ID, &o.AccountID, &game, &o.BetAmount, &result, &o.NetChange, &createdAt); err != nil {
			return nil, err
		}
		o.Game = model.GameType(game)
		o.Result = model.Result(result)
		o.CreatedAt = pgsql.FromMillis(createdAt)
		out = append(out, o)
	}
	return out, rows.Err()
}
