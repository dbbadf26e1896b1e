package transaction_repo

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
	table          = "transactions"
	colID          = "id"
	colAccountID   = "account_id"
	colAmount      = "amount"
	colKind        = "kind"
	colDescription = "description"
	colCreatedAt   = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTransactionRepository(dbc *pgxpool.Pool) repository.TransactionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Create - добавляет запись в журнал, заполняет tx.ID
func (r *repo) Create(ctx context.Context, tx *model.Transaction) error {
	query := pgsql.Builder.Insert(table).
		Columns(colAccountID, colAmount, colKind, colDescription, colCreatedAt).
		Values(tx.AccountID, tx.Amount, string(tx.Kind), tx.Description, pgsql.ToMillis(tx.CreatedAt)).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&tx.ID)
	return pgsql.MapError(err)
}

// ListByAccount - последние записи счёта, новые первыми
func (r *repo) ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.Transaction, error) {
	query := pgsql.Builder.Select(colID, colAccountID, colAmount, colKind, colDescription, colCreatedAt).
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

	var out []model.Transaction
	for rows.Next() {
		var (
			tx        model.Transaction
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Amount, &kind, &tx.Description, &createdAt); err != nil {
			return nil, err
		}
		tx.Kind = model.TransactionKind(kind)
		tx.CreatedAt = pgsql.FromMillis(createdAt)
		out = append(out, tx)
	}
	return out, rows.Err()
}
