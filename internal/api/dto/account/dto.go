package account

import "time"

type AccountResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Balance        int64      `json:"balance"`
	TotalWon       int64      `json:"total_won"`
	TotalLost      int64      `json:"total_lost"`
	GamesPlayed    int64      `json:"games_played"`
	GamesWon       int64      `json:"games_won"`
	DailyStreak    int        `json:"daily_streak"`
	LastDailyClaim *time.Time `json:"last_daily_claim,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type TransactionResponse struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type OutcomeResponse struct {
	ID        int64     `json:"id"`
	Game      string    `json:"game"`
	Bet       int64     `json:"bet"`
	Result    string    `json:"result"`
	NetChange int64     `json:"net_change"`
	CreatedAt time.Time `json:"created_at"`
}

type TransferRequest struct {
	To     int64 `json:"to"`     // ID получателя
	Amount int64 `json:"amount"` // Сумма, > 0
}

type TransferResponse struct {
	From     int64                 `json:"from"`
	To       int64                 `json:"to"`
	Amount   int64                 `json:"amount"`
	Balance  int64                 `json:"balance"` // Баланс отправителя после перевода
	Unlocked []AchievementResponse `json:"unlocked"`
}

type DailyResponse struct {
	Reward   int64                 `json:"reward"`
	Streak   int                   `json:"streak"`
	Balance  int64                 `json:"balance"`
	NextAt   time.Time             `json:"next_at"`
	Unlocked []AchievementResponse `json:"unlocked"`
}

// DailyNotReadyResponse - отказ с моментом следующей попытки
type DailyNotReadyResponse struct {
	Error  string    `json:"error"`
	Code   string    `json:"code"`
	Streak int       `json:"streak"`
	NextAt time.Time `json:"next_at"`
}

type AchievementResponse struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Reward      int64      `json:"reward"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}
