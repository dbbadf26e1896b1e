package bet

import (
	"casino_engine/internal/config"
	"casino_engine/internal/events"
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/service"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type serv struct {
	ledger       service.LedgerService
	achievements service.AchievementService
	rtp          repository.RTPRepository
	publisher    events.Publisher
	cfg          config.EconomyConfig
	log          *logrus.Logger
	now          func() time.Time
}

// NewBetService - расчёт ставок, переводы и ежедневная награда поверх журнала
func NewBetService(
	ledger service.LedgerService,
	achievements service.AchievementService,
	rtp repository.RTPRepository,
	publisher events.Publisher,
	cfg config.EconomyConfig,
	log *logrus.Logger,
) service.BetService {
	return &serv{
		ledger:       ledger,
		achievements: achievements,
		rtp:          rtp,
		publisher:    publisher,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// evaluate проверяет достижения после коммита. Ошибка не отменяет уже проведённую операцию
func (s *serv) evaluate(ctx context.Context, accountID int64) []model.Achievement {
	if s.achievements == nil {
		return nil
	}
	unlocked, err := s.achievements.Evaluate(ctx, accountID)
	if err != nil {
		s.log.WithError(err).WithField("account_id", accountID).Warn("achievement evaluation failed")
		return nil
	}
	return unlocked
}

// balanceAfter перечитывает баланс, если награды за достижения его изменили
func (s *serv) balanceAfter(ctx context.Context, accountID, balance int64, unlocked []model.Achievement) int64 {
	if len(unlocked) == 0 {
		return balance
	}
	a, err := s.ledger.Account(ctx, accountID)
	if err != nil {
		return balance
	}
	return a.Balance
}

func (s *serv) publish(ctx context.Context, typ string, accountID int64, payload any) {
	err := s.publisher.Publish(ctx, events.Event{Type: typ, AccountID: accountID, At: s.now().UTC(), Payload: payload})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"account_id": accountID, "event": typ}).Warn("failed to publish event")
	}
}
