package ledger

import (
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"casino_engine/internal/service"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Apply - атомарная единица над одним счётом: блокировка строки, mutate, запись счёта и журнала.
// Ошибка mutate откатывает транзакцию. Ошибки бизнес-правил возвращаются как есть,
// остальные логируются и становятся ErrInternal
func (s *serv) Apply(ctx context.Context, id int64, mutate service.MutateFunc) (*model.Account, error) {
	var out *model.Account
	err := s.withRetry(ctx, id, func() error {
		return s.txManager.Do(ctx, func(txCtx context.Context) error {
			a, err := s.accounts.GetForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			m, err := mutate(txCtx, a)
			if err != nil {
				return mutateError{err}
			}
			if err := s.persist(txCtx, m, a); err != nil {
				return err
			}
			out = a
			return nil
		})
	})
	if err != nil {
		return nil, s.surface(err, "apply", id)
	}
	return out, nil
}

// ApplyPair - то же для двух счетов. Строки блокируются по возрастанию ID, mutate получает их в порядке аргументов
func (s *serv) ApplyPair(ctx context.Context, a, b int64, mutate service.PairMutateFunc) (*model.Account, *model.Account, error) {
	if a == b {
		return nil, nil, model.ErrInvalidTransfer
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	var outA, outB *model.Account
	err := s.withRetry(ctx, a, func() error {
		return s.txManager.Do(ctx, func(txCtx context.Context) error {
			lockedFirst, err := s.accounts.GetForUpdate(txCtx, first)
			if err != nil {
				return err
			}
			lockedSecond, err := s.accounts.GetForUpdate(txCtx, second)
			if err != nil {
				return err
			}
			accA, accB := lockedFirst, lockedSecond
			if accA.ID != a {
				accA, accB = accB, accA
			}

			m, err := mutate(txCtx, accA, accB)
			if err != nil {
				return mutateError{err}
			}
			if err := s.persist(txCtx, m, accA, accB); err != nil {
				return err
			}
			outA, outB = accA, accB
			return nil
		})
	})
	if err != nil {
		return nil, nil, s.surface(err, "apply_pair", a)
	}
	return outA, outB, nil
}

// persist сохраняет счета, записи журнала и исход игры внутри текущей транзакции
func (s *serv) persist(ctx context.Context, m model.Mutation, accounts ...*model.Account) error {
	for _, a := range accounts {
		if a.Balance < 0 {
			return mutateError{model.ErrInsufficientFunds}
		}
		if err := s.accounts.Update(ctx, a); err != nil {
			return err
		}
	}

	now := s.now()
	for i := range m.Transactions {
		tx := &m.Transactions[i]
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = now
		}
		if err := s.transactions.Create(ctx, tx); err != nil {
			return err
		}
	}
	if m.Outcome != nil {
		if m.Outcome.CreatedAt.IsZero() {
			m.Outcome.CreatedAt = now
		}
		if err := s.outcomes.Create(ctx, m.Outcome); err != nil {
			return err
		}
	}
	return nil
}

// withRetry повторяет единицу один раз при конфликте конкурентной записи
func (s *serv) withRetry(ctx context.Context, id int64, unit func() error) error {
	err := unit()
	if err == nil || !errors.Is(err, model.ErrConcurrencyConflict) || ctx.Err() != nil {
		return err
	}
	metrics.ConflictRetries.Inc()
	s.log.WithFields(logrus.Fields{"account_id": id}).WithError(err).Warn("retrying after concurrency conflict")
	return unit()
}

// surface возвращает ошибку бизнес-правила из mutate как есть, остальное - ErrInternal
func (s *serv) surface(err error, op string, id int64) error {
	var me mutateError
	if errors.As(err, &me) && model.IsDomain(me.err) {
		return me.err
	}
	return s.internal(err, op, id)
}

// mutateError помечает ошибку, которую вернул mutate
type mutateError struct{ err error }

func (e mutateError) Error() string { return e.err.Error() }
func (e mutateError) Unwrap() error { return e.err }
