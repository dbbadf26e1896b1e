package ledger

import (
	"casino_engine/internal/model"
	"context"

	"github.com/sirupsen/logrus"
)

// GetOrCreateAccount - счёт по ID. При первом обращении создаётся со стартовым балансом.
// Непустое имя обновляет отображаемое имя счёта
func (s *serv) GetOrCreateAccount(ctx context.Context, id int64, name string) (*model.Account, error) {
	created, err := s.accounts.Create(ctx, &model.Account{
		ID:        id,
		Name:      name,
		Balance:   s.startingBalance,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, s.internal(err, "create account", id)
	}
	if created {
		s.log.WithFields(logrus.Fields{"account_id": id, "balance": s.startingBalance}).Info("account created")
	}

	a, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, s.internal(err, "get account", id)
	}
	if name == "" || a.Name == name {
		return a, nil
	}

	return s.Apply(ctx, id, func(_ context.Context, acc *model.Account) (model.Mutation, error) {
		acc.Name = name
		return model.Mutation{}, nil
	})
}

func (s *serv) Account(ctx context.Context, id int64) (*model.Account, error) {
	a, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, s.internal(err, "get account", id)
	}
	return a, nil
}

func (s *serv) Transactions(ctx context.Context, id int64, limit int) ([]model.Transaction, error) {
	txs, err := s.transactions.ListByAccount(ctx, id, limit)
	if err != nil {
		return nil, s.internal(err, "list transactions", id)
	}
	return txs, nil
}

func (s *serv) Outcomes(ctx context.Context, id int64, limit int) ([]model.GameOutcome, error) {
	outcomes, err := s.outcomes.ListByAccount(ctx, id, limit)
	if err != nil {
		return nil, s.internal(err, "list outcomes", id)
	}
	return outcomes, nil
}

// internal пропускает доменные ошибки, остальные пишет в лог и прячет за ErrInternal
func (s *serv) internal(err error, op string, id int64) error {
	if err == nil || model.IsDomain(err) {
		return err
	}
	s.log.WithError(err).WithFields(logrus.Fields{"account_id": id, "op": op}).Error("ledger storage failure")
	return model.ErrInternal
}
