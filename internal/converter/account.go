package converter

import (
	"casino_engine/internal/api/dto/account"
	"casino_engine/internal/model"
)

func ToAccountResponse(a *model.Account) account.AccountResponse {
	return account.AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance,
		TotalWon:       a.TotalWon,
		TotalLost:      a.TotalLost,
		GamesPlayed:    a.GamesPlayed,
		GamesWon:       a.GamesWon,
		DailyStreak:    a.DailyStreak,
		LastDailyClaim: a.LastDailyClaim,
		CreatedAt:      a.CreatedAt,
	}
}

func ToTransactionsResponse(txs []model.Transaction) []account.TransactionResponse {
	out := make([]account.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, account.TransactionResponse{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Kind:        string(tx.Kind),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return out
}

func ToOutcomesResponse(outcomes []model.GameOutcome) []account.OutcomeResponse {
	out := make([]account.OutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, account.OutcomeResponse{
			ID:        o.ID,
			Game:      string(o.Game),
			Bet:       o.BetAmount,
			Result:    string(o.Result),
			NetChange: o.NetChange,
			CreatedAt: o.CreatedAt,
		})
	}
	return out
}

func ToTransferResponse(t *model.Transfer) account.TransferResponse {
	return account.TransferResponse{
		From:     t.From,
		To:       t.To,
		Amount:   t.Amount,
		Balance:  t.FromBalance,
		Unlocked: ToAchievementsResponse(t.Unlocked),
	}
}

func ToDailyResponse(c *model.DailyClaim) account.DailyResponse {
	return account.DailyResponse{
		Reward:   c.Reward,
		Streak:   c.Streak,
		Balance:  c.Balance,
		NextAt:   c.NextAt,
		Unlocked: ToAchievementsResponse(c.Unlocked),
	}
}

func ToAchievementsResponse(list []model.Achievement) []account.AchievementResponse {
	out := make([]account.AchievementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, account.AchievementResponse{
			Key:         a.Key,
			Name:        a.Name,
			Description: a.Description,
			Reward:      a.Reward,
		})
	}
	return out
}

func ToUnlockedResponse(list []model.UnlockedAchievement) []account.AchievementResponse {
	out := make([]account.AchievementResponse, 0, len(list))
	for _, a := range list {
		at := a.UnlockedAt
		out = append(out, account.AchievementResponse{
			Key:         a.Key,
			Name:        a.Name,
			Description: a.Description,
			Reward:      a.Reward,
			UnlockedAt:  &at,
		})
	}
	return out
}
