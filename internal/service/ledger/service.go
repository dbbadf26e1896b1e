package ledger

import (
	"casino_engine/internal/repository"
	"casino_engine/internal/service"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sirupsen/logrus"
)

type serv struct {
	accounts        repository.AccountRepository
	transactions    repository.TransactionRepository
	outcomes        repository.OutcomeRepository
	txManager       trm.Manager
	log             *logrus.Logger
	startingBalance int64
	now             func() time.Time
}

// NewLedgerService - журнал балансов: атомарное чтение-проверка-запись поверх транзакций trm
func NewLedgerService(
	accounts repository.AccountRepository,
	transactions repository.TransactionRepository,
	outcomes repository.OutcomeRepository,
	txManager trm.Manager,
	log *logrus.Logger,
	startingBalance int64,
) service.LedgerService {
	return &serv{
		accounts:        accounts,
		transactions:    transactions,
		outcomes:        outcomes,
		txManager:       txManager,
		log:             log,
		startingBalance: startingBalance,
		now:             time.Now,
	}
}
