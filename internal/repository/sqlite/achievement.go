package sqlite

import (
	"casino_engine/internal/model"
	"context"

	sq "github.com/Masterminds/squirrel"
)

const (
	unlocksTable  = "achievement_unlocks"
	colKey        = "achievement_key"
	colUnlockedAt = "unlocked_at"
)

type achievementRepo struct {
	s *Store
}

func (r *achievementRepo) Unlock(ctx context.Context, u *model.AchievementUnlock) error {
	sqlStr, args, err := builder.Insert(unlocksTable).
		Columns(colAccountID, colKey, colUnlockedAt).
		Values(u.AccountID, u.Key, toMillis(u.UnlockedAt)).
		Suffix("ON CONFLICT (" + colAccountID + ", " + colKey + ") DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.s.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyUnlocked
		}
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrAlreadyUnlocked
	}
	return nil
}

func (r *achievementRepo) ListByAccount(ctx context.Context, accountID int64) ([]model.AchievementUnlock, error) {
	sqlStr, args, err := builder.Select(colAccountID, colKey, colUnlockedAt).
		From(unlocksTable).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colUnlockedAt, colKey).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.s.conn(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err)
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
		u.UnlockedAt = fromMillis(ms)
		out = append(out, u)
	}
	return out, rows.Err()
}
