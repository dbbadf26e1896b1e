package bet

import (
	"casino_engine/internal/events"
	"casino_engine/internal/metrics"
	"casino_engine/internal/model"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	dailyCooldown = 24 * time.Hour
	// до этого момента серия продолжается, позже - начинается заново
	dailyStreakWindow = 48 * time.Hour
)

// DailyReward - награда за серию streak: база + min(streak·bonus, cap)
func DailyReward(base, bonus, limit int64, streak int) int64 {
	return base + min(int64(streak)*bonus, limit)
}

// ClaimDaily - ежедневная награда. Раньше чем через 24 часа - ErrDailyNotReady и время следующей попытки
func (s *serv) ClaimDaily(ctx context.Context, accountID int64) (*model.DailyClaim, error) {
	now := s.now()
	claim := &model.DailyClaim{}

	acc, err := s.ledger.Apply(ctx, accountID, func(_ context.Context, a *model.Account) (model.Mutation, error) {
		streak := 1
		if last := a.LastDailyClaim; last != nil {
			elapsed := now.Sub(*last)
			if elapsed < dailyCooldown {
				claim.Streak = a.DailyStreak
				claim.Balance = a.Balance
				claim.NextAt = last.Add(dailyCooldown)
				return model.Mutation{}, model.ErrDailyNotReady
			}
			if elapsed <= dailyStreakWindow {
				streak = a.DailyStreak + 1
			}
		}

		reward := DailyReward(s.cfg.DailyBase(), s.cfg.DailyStreakBonus(), s.cfg.DailyBonusCap(), streak)
		a.Balance += reward
		a.DailyStreak = streak
		a.LastDailyClaim = &now

		claim.Reward = reward
		claim.Streak = streak
		claim.NextAt = now.Add(dailyCooldown)
		return model.Mutation{Transactions: []model.Transaction{{
			AccountID:   a.ID,
			Amount:      reward,
			Kind:        model.TransactionDaily,
			Description: "daily reward",
		}}}, nil
	})
	if err != nil {
		if model.IsDomain(err) {
			metrics.Rejections.WithLabelValues("daily", reason(err)).Inc()
		}
		if claim.NextAt.IsZero() {
			return nil, err
		}
		return claim, err
	}
	claim.Balance = acc.Balance

	metrics.DailyClaims.Inc()
	s.log.WithFields(logrus.Fields{"account_id": accountID, "reward": claim.Reward, "streak": claim.Streak}).Info("daily claimed")
	s.publish(ctx, events.DailyClaimed, accountID, claim)

	claim.Unlocked = s.evaluate(ctx, accountID)
	claim.Balance = s.balanceAfter(ctx, accountID, claim.Balance, claim.Unlocked)
	return claim, nil
}
