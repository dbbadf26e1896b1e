package bet

import (
	"casino_engine/internal/events"
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transfer - перевод между счетами одной транзакцией. Получатель создаётся при первом упоминании
func (s *serv) Transfer(ctx context.Context, from, to, amount int64) (*model.Transfer, error) {
	if amount <= 0 {
		metrics.Rejections.WithLabelValues("transfer", "invalid_transfer").Inc()
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidTransfer)
	}
	if from == to {
		metrics.Rejections.WithLabelValues("transfer", "invalid_transfer").Inc()
		return nil, fmt.Errorf("%w: cannot transfer to yourself", model.ErrInvalidTransfer)
	}
	if _, err := s.ledger.Account(ctx, from); err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetOrCreateAccount(ctx, to, ""); err != nil {
		return nil, err
	}

	sender, recipient, err := s.ledger.ApplyPair(ctx, from, to, func(_ context.Context, a, b *model.Account) (model.Mutation, error) {
		if a.Balance < amount {
			return model.Mutation{}, model.ErrInsufficientFunds
		}
		a.Balance -= amount
		b.Balance += amount
		return model.Mutation{Transactions: []model.Transaction{
			{AccountID: a.ID, Amount: -amount, Kind: model.TransactionTransferOut, Description: fmt.Sprintf("transfer to %d", b.ID)},
			{AccountID: b.ID, Amount: amount, Kind: model.TransactionTransferIn, Description: fmt.Sprintf("transfer from %d", a.ID)},
		}}, nil
	})
	if err != nil {
		if model.IsDomain(err) {
			metrics.Rejections.WithLabelValues("transfer", reason(err)).Inc()
		}
		return nil, err
	}

	metrics.Transfers.Inc()
	s.log.WithFields(logrus.Fields{"from": from, "to": to, "amount": amount}).Info("transfer completed")

	res := &model.Transfer{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: sender.Balance,
		ToBalance:   recipient.Balance,
	}
	s.publish(ctx, events.TransferCompleted, from, res)

	res.Unlocked = s.evaluate(ctx, from)
	res.FromBalance = s.balanceAfter(ctx, from, res.FromBalance, res.Unlocked)
	// награды получателя в ответ отправителю не попадают
	s.evaluate(ctx, to)
	return res, nil
}
