package repository

import (
	"casino_engine/internal/model"
	"context"
)

// Все методы работают внутри транзакции, если она есть в ctx (trm), иначе напрямую с БД

type AccountRepository interface {
	// Create вставляет счёт, если его ещё нет. created = false, если счёт уже существовал
	Create(ctx context.Context, account *model.Account) (created bool, err error)
	Get(ctx context.Context, id int64) (*model.Account, error)
	// GetForUpdate читает счёт и блокирует строку до конца транзакции
	GetForUpdate(ctx context.Context, id int64) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.Transaction, error)
}

type OutcomeRepository interface {
	Create(ctx context.Context, outcome *model.GameOutcome) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.GameOutcome, error)
}

type AchievementRepository interface {
	// Unlock записывает разблокировку. Повторная запись возвращает model.ErrAlreadyUnlocked
	Unlock(ctx context.Context, unlock *model.AchievementUnlock) error
	ListByAccount(ctx context.Context, accountID int64) ([]model.AchievementUnlock, error)
}

// RTPRepository - статистика выплат по играм в памяти процесса
type RTPRepository interface {
	Record(game model.GameType, bet, payout int64)
	Snapshot() []model.RTPStats
}
