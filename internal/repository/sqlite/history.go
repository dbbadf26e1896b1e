package sqlite

import (
	"casino_engine/internal/model"
	"context"

	sq "github.com/Masterminds/squirrel"
)

const (
	transactionsTable = "transactions"
	outcomesTable     = "game_outcomes"

	colAccountID   = "account_id"
	colAmount      = "amount"
	colKind        = "kind"
	colDescription = "description"
	colGame        = "game"
	colBet         = "bet_amount"
	colResult      = "result"
	colNetChange   = "net_change"
)

type transactionRepo struct {
	s *Store
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	sqlStr, args, err := builder.Insert(transactionsTable).
		Columns(colAccountID, colAmount, colKind, colDescription, colCreatedAt).
		Values(tx.AccountID, tx.Amount, string(tx.Kind), tx.Description, toMillis(tx.CreatedAt)).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err)
	}
	tx.ID, err = res.LastInsertId()
	return err
}

func (r *transactionRepo) ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.Transaction, error) {
	sqlStr, args, err := builder.Select(colID, colAccountID, colAmount, colKind, colDescription, colCreatedAt).
		From(transactionsTable).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.s.conn(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err)
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
		tx.CreatedAt = fromMillis(createdAt)
		out = append(out, tx)
	}
	return out, rows.Err()
}

type outcomeRepo struct {
	s *Store
}

func (r *outcomeRepo) Create(ctx context.Context, o *model.GameOutcome) error {
	sqlStr, args, err := builder.Insert(outcomesTable).
		Columns(colAccountID, colGame, colBet, colResult, colNetChange, colCreatedAt).
		Values(o.AccountID, string(o.Game), o.BetAmount, string(o.Result), o.NetChange, toMillis(o.CreatedAt)).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err)
	}
	o.ID, err = res.LastInsertId()
	return err
}

func (r *outcomeRepo) ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.GameOutcome, error) {
	sqlStr, args, err := builder.Select(colID, colAccountID, colGame, colBet, colResult, colNetChange, colCreatedAt).
		From(outcomesTable).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.s.conn(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err)
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
		o.CreatedAt = fromMillis(createdAt)
		out = append(out, o)
	}
	return out, rows.Err()
}
