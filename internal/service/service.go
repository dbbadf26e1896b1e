package service

import (
	"casino_engine/internal/game/catalog"
	"casino_engine/internal/model"
	"context"
)

// MutateFunc меняет заблокированный счёт и возвращает записи журнала для той же транзакции
type MutateFunc func(ctx context.Context, account *model.Account) (model.Mutation, error)

// PairMutateFunc - то же для двух счетов, в порядке аргументов ApplyPair
type PairMutateFunc func(ctx context.Context, a, b *model.Account) (model.Mutation, error)

type LedgerService interface {
	GetOrCreateAccount(ctx context.Context, id int64, name string) (*model.Account, error)
	Account(ctx context.Context, id int64) (*model.Account, error)
	Apply(ctx context.Context, id int64, mutate MutateFunc) (*model.Account, error)
	ApplyPair(ctx context.Context, a, b int64, mutate PairMutateFunc) (*model.Account, *model.Account, error)
	Transactions(ctx context.Context, id int64, limit int) ([]model.Transaction, error)
	Outcomes(ctx context.Context, id int64, limit int) ([]model.GameOutcome, error)
}

type BetService interface {
	// ValidateWager проверяет лимиты ставки и текущий баланс до розыгрыша
	ValidateWager(ctx context.Context, accountID, bet int64) error
	// HoldStake списывает ставку многошаговой игры при старте, расчёт потом идёт с StakeHeld
	HoldStake(ctx context.Context, accountID, bet int64, game model.GameType) (*model.Account, error)
	SettleBet(ctx context.Context, req model.SettleRequest) (*model.Settlement, error)
	Transfer(ctx context.Context, from, to, amount int64) (*model.Transfer, error)
	ClaimDaily(ctx context.Context, accountID int64) (*model.DailyClaim, error)
}

type AchievementService interface {
	Evaluate(ctx context.Context, accountID int64) ([]model.Achievement, error)
	List(ctx context.Context, accountID int64) ([]model.UnlockedAchievement, error)
}

// PlayRequest - ставка на игру каталога
type PlayRequest struct {
	Game catalog.Game
	Bet  int64
}

type PlayResult struct {
	Outcome    catalog.Outcome
	Settlement *model.Settlement
}

type GameService interface {
	Play(ctx context.Context, accountID int64, req PlayRequest) (*PlayResult, error)
	DoubleHistory() []catalog.DoubleColor
}

// StartRequest - запуск многошаговой игры. Difficulty нужна mines и tower
type StartRequest struct {
	Game       model.GameType
	Bet        int64
	Difficulty string
}

type SessionService interface {
	Start(ctx context.Context, accountID int64, req StartRequest) (*model.MoveResult, error)
	ApplyMove(ctx context.Context, accountID int64, sessionID string, move model.Move) (*model.MoveResult, error)
	Get(accountID int64, sessionID string) (*model.SessionInfo, error)
	Active(accountID int64) (*model.SessionInfo, bool)
	Shutdown(ctx context.Context)
}
