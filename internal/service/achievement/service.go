package achievement

import (
	"casino_engine/internal/events"
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/service"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)


type serv struct {
	ledger      service.LedgerService
	repo        repository.AchievementRepository
	publisher   events.Publisher
	log         *logrus.Logger
	definitions []Definition
	now         func() time.Time
}

func NewAchievementService(
	ledger service.LedgerService,
	repo repository.AchievementRepository,
	publisher events.Publisher,
	log *logrus.Logger,
) service.AchievementService {
	return &serv{
		ledger:      ledger,
		repo:        repo,
		publisher:   publisher,
		log:         log,
		definitions: definitions,
		now:         time.Now,
	}
}

// Evaluate выдаёт все заработанные и ещё не полученные достижения.
// Награда может открыть следующее достижение, поэтому проход повторяется, пока есть новые
func (s *serv) Evaluate(ctx context.Context, accountID int64) ([]model.Achievement, error) {
	have, err := s.unlockedKeys(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var unlocked []model.Achievement
	for {
		acc, err := s.ledger.Account(ctx, accountID)
		if err != nil {
			return unlocked, err
		}
		stats := acc.Stats()

		progressed := false
		for _, def := range s.definitions {
			if have[def.Key] || !def.Predicate(stats) {
				continue
			}
			err := s.unlock(ctx, accountID, def)
			switch {
			case err == nil:
				unlocked = append(unlocked, def.Achievement)
				progressed = true
			case errors.Is(err, model.ErrAlreadyUnlocked):
			case errors.Is(err, model.ErrNotEarned):
				continue
			default:
				return unlocked, err
			}
			have[def.Key] = true
		}
		if !progressed {
			return unlocked, nil
		}
	}
}

// unlock - вставка разблокировки и начисление награды одной транзакцией
func (s *serv) unlock(ctx context.Context, accountID int64, def Definition) error {
	now := s.now()
	_, err := s.ledger.Apply(ctx, accountID, func(txCtx context.Context, a *model.Account) (model.Mutation, error) {
		if !def.Predicate(a.Stats()) {
			return model.Mutation{}, model.ErrNotEarned
		}
		err := s.repo.Unlock(txCtx, &model.AchievementUnlock{AccountID: a.ID, Key: def.Key, UnlockedAt: now})
		if err != nil {
			return model.Mutation{}, err
		}
		a.Balance += def.Reward
		return model.Mutation{Transactions: []model.Transaction{{
			AccountID:   a.ID,
			Amount:      def.Reward,
			Kind:        model.TransactionAchievement,
			Description: fmt.Sprintf("achievement: %s", def.Name),
		}}}, nil
	})
	if err != nil {
		return err
	}

	metrics.AchievementsUnlocked.WithLabelValues(def.Key).Inc()
	s.log.WithFields(logrus.Fields{"account_id": accountID, "achievement": def.Key, "reward": def.Reward}).Info("achievement unlocked")
	if err := s.publisher.Publish(ctx, events.Event{
		Type:      events.AchievementUnlocked,
		AccountID: accountID,
		At:        now.UTC(),
		Payload:   def.Achievement,
	}); err != nil {
		s.log.WithError(err).WithField("account_id", accountID).Warn("failed to publish event")
	}
	return nil
}

func (s *serv) unlockedKeys(ctx context.Context, accountID int64) (map[string]bool, error) {
	list, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		s.log.WithError(err).WithField("account_id", accountID).Error("failed to list achievements")
		return nil, model.ErrInternal
	}
	have := make(map[string]bool, len(list))
	for _, u := range list {
		have[u.Key] = true
	}
	return have, nil
}

// List - полученные достижения счёта в порядке получения
func (s *serv) List(ctx context.Context, accountID int64) ([]model.UnlockedAchievement, error) {
	list, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		s.log.WithError(err).WithField("account_id", accountID).Error("failed to list achievements")
		return nil, model.ErrInternal
	}
	out := make([]model.UnlockedAchievement, 0, len(list))
	for _, u := range list {
		def, ok := lookup(u.Key)
		if !ok {
			// достижение убрали из списка, запись осталась
			def.Achievement = model.Achievement{Key: u.Key, Name: u.Key}
		}
		out = append(out, model.UnlockedAchievement{Achievement: def.Achievement, UnlockedAt: u.UnlockedAt})
	}
	return out, nil
}
