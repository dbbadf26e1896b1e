package model

import "time"

// Account - игровой счёт пользователя чата
type Account struct {
	ID             int64
	Name           string
	Balance        int64
	TotalWon       int64
	TotalLost      int64
	GamesPlayed    int64
	GamesWon       int64
	CreatedAt      time.Time
	LastDailyClaim *time.Time
	DailyStreak    int
}

// Stats - статистика счёта, по которой считаются достижения
type Stats struct {
	Balance     int64
	TotalWon    int64
	TotalLost   int64
	GamesPlayed int64
	GamesWon    int64
	DailyStreak int
}

func (a *Account) Stats() Stats {
	return Stats{
		Balance:     a.Balance,
		TotalWon:    a.TotalWon,
		TotalLost:   a.TotalLost,
		GamesPlayed: a.GamesPlayed,
		GamesWon:    a.GamesWon,
		DailyStreak: a.DailyStreak,
	}
}

type TransactionKind string

const (
	TransactionStake       TransactionKind = "stake"
	TransactionWin         TransactionKind = "win"
	TransactionRefund      TransactionKind = "refund"
	TransactionTransferIn  TransactionKind = "transfer_in"
	TransactionTransferOut TransactionKind = "transfer_out"
	TransactionAchievement TransactionKind = "achievement"
	TransactionDaily       TransactionKind = "daily_reward"
)

// Transaction - запись журнала движения средств. Только добавление
type Transaction struct {
	ID          int64
	AccountID   int64
	Amount      int64
	Kind        TransactionKind
	Description string
	CreatedAt   time.Time
}

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

// GameOutcome - запись аудита сыгранной игры
type GameOutcome struct {
	ID        int64
	AccountID int64
	Game      GameType
	BetAmount int64
	Result    Result
	NetChange int64
	CreatedAt time.Time
}

// Mutation - то, что нужно записать вместе с обновлённым счётом в одной транзакции
type Mutation struct {
	Transactions []Transaction
	Outcome      *GameOutcome
}
