package bet

import (
	"casino_engine/internal/events"
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ValidateWager - лимиты ставки и достаточный баланс
func (s *serv) ValidateWager(ctx context.Context, accountID, bet int64) error {
	if err := s.checkLimits(bet); err != nil {
		return err
	}
	a, err := s.ledger.Account(ctx, accountID)
	if err != nil {
		return err
	}
	if a.Balance < bet {
		return model.ErrInsufficientFunds
	}
	return nil
}

func (s *serv) checkLimits(bet int64) error {
	if bet <= 0 {
		return fmt.Errorf("%w: bet must be positive", model.ErrInvalidWager)
	}
	if bet < s.cfg.MinBet() {
		return fmt.Errorf("%w: minimum bet is %d", model.ErrInvalidWager, s.cfg.MinBet())
	}
	if bet > s.cfg.MaxBet() {
		return fmt.Errorf("%w: maximum bet is %d", model.ErrInvalidWager, s.cfg.MaxBet())
	}
	return nil
}

// HoldStake списывает ставку под блокировкой строки: баланс проверяется там же, где уменьшается
func (s *serv) HoldStake(ctx context.Context, accountID, bet int64, game model.GameType) (*model.Account, error) {
	if err := s.checkLimits(bet); err != nil {
		metrics.Rejections.WithLabelValues("hold", "invalid_wager").Inc()
		return nil, err
	}
	acc, err := s.ledger.Apply(ctx, accountID, func(_ context.Context, a *model.Account) (model.Mutation, error) {
		if a.Balance < bet {
			return model.Mutation{}, model.ErrInsufficientFunds
		}
		a.Balance -= bet
		return model.Mutation{Transactions: []model.Transaction{stakeRow(a.ID, bet, game)}}, nil
	})
	if err != nil {
		if model.IsDomain(err) {
			metrics.Rejections.WithLabelValues("hold", reason(err)).Inc()
		}
		return nil, err
	}
	metrics.Wagered.WithLabelValues(string(game)).Add(float64(bet))
	s.log.WithFields(logrus.Fields{"account_id": accountID, "game": game, "bet": bet}).Info("stake held")
	return acc, nil
}

func stakeRow(accountID, bet int64, game model.GameType) model.Transaction {
	return model.Transaction{
		AccountID:   accountID,
		Amount:      -bet,
		Kind:        model.TransactionStake,
		Description: fmt.Sprintf("%s bet", game),
	}
}

// SettleBet - атомарно списывает ставку и зачисляет выплату bet+net_change.
// Баланс проверяется внутри той же транзакции, что и запись. С StakeHeld ставка уже списана
func (s *serv) SettleBet(ctx context.Context, req model.SettleRequest) (*model.Settlement, error) {
	if err := s.checkLimits(req.BetAmount); err != nil {
		metrics.Rejections.WithLabelValues("settle", "invalid_wager").Inc()
		return nil, err
	}
	if req.NetChange < -req.BetAmount {
		return nil, fmt.Errorf("%w: loss %d exceeds bet %d", model.ErrInvalidWager, -req.NetChange, req.BetAmount)
	}
	switch req.Result {
	case model.ResultWin, model.ResultLoss, model.ResultPush:
	default:
		return nil, fmt.Errorf("%w: unknown result %q", model.ErrInvalidWager, req.Result)
	}

	payout := req.BetAmount + req.NetChange
	acc, err := s.ledger.Apply(ctx, req.AccountID, func(_ context.Context, a *model.Account) (model.Mutation, error) {
		if req.StakeHeld {
			a.Balance += payout
		} else {
			if a.Balance < req.BetAmount {
				return model.Mutation{}, model.ErrInsufficientFunds
			}
			a.Balance += req.NetChange
		}
		a.GamesPlayed++
		if req.Result == model.ResultWin {
			a.GamesWon++
		}
		if req.NetChange > 0 {
			a.TotalWon += req.NetChange
		} else {
			a.TotalLost -= req.NetChange
		}

		var txs []model.Transaction
		if !req.StakeHeld {
			txs = append(txs, stakeRow(a.ID, req.BetAmount, req.Game))
		}
		if payout > 0 {
			kind := model.TransactionRefund
			if req.NetChange > 0 {
				kind = model.TransactionWin
			}
			txs = append(txs, model.Transaction{
				AccountID:   a.ID,
				Amount:      payout,
				Kind:        kind,
				Description: fmt.Sprintf("%s payout", req.Game),
			})
		}
		return model.Mutation{
			Transactions: txs,
			Outcome: &model.GameOutcome{
				AccountID: a.ID,
				Game:      req.Game,
				BetAmount: req.BetAmount,
				Result:    req.Result,
				NetChange: req.NetChange,
			},
		}, nil
	})
	if err != nil {
		if model.IsDomain(err) {
			metrics.Rejections.WithLabelValues("settle", reason(err)).Inc()
		}
		return nil, err
	}

	game := string(req.Game)
	metrics.BetsSettled.WithLabelValues(game, string(req.Result)).Inc()
	if !req.StakeHeld {
		metrics.Wagered.WithLabelValues(game).Add(float64(req.BetAmount))
	}
	metrics.PaidOut.WithLabelValues(game).Add(float64(payout))
	s.rtp.Record(req.Game, req.BetAmount, payout)
	s.log.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"game":       game,
		"bet":        req.BetAmount,
		"net":        req.NetChange,
		"result":     req.Result,
	}).Info("bet settled")

	res := &model.Settlement{
		AccountID: req.AccountID,
		BetAmount: req.BetAmount,
		NetChange: req.NetChange,
		Balance:   acc.Balance,
		Game:      req.Game,
		Result:    req.Result,
	}
	s.publish(ctx, events.BetSettled, req.AccountID, res)

	res.Unlocked = s.evaluate(ctx, req.AccountID)
	res.Balance = s.balanceAfter(ctx, req.AccountID, res.Balance, res.Unlocked)
	return res, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, model.ErrInvalidWager):
		return "invalid_wager"
	case errors.Is(err, model.ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, model.ErrDailyNotReady):
		return "daily_not_ready"
	case errors.Is(err, model.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, model.ErrConcurrencyConflict):
		return "conflict"
	default:
		return "other"
	}
}
