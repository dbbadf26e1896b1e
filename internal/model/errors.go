package model

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidWager        = errors.New("invalid wager")
	ErrInvalidMove         = errors.New("invalid move")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAlreadyTerminal     = errors.New("session already finished")
	ErrSessionActive       = errors.New("another game is in progress")
	ErrConcurrencyConflict = errors.New("concurrent update, retry")
	ErrAlreadyUnlocked     = errors.New("achievement already unlocked")
	ErrNotEarned           = errors.New("achievement conditions not met")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidTransfer     = errors.New("invalid transfer")
	ErrDailyNotReady       = errors.New("daily reward is not ready yet")
	ErrUnknownGame         = errors.New("unknown game")
	ErrInternal            = errors.New("internal error")
)

var domainErrors = []error{
	ErrInsufficientFunds,
	ErrInvalidWager,
	ErrInvalidMove,
	ErrSessionNotFound,
	ErrAlreadyTerminal,
	ErrSessionActive,
	ErrConcurrencyConflict,
	ErrAlreadyUnlocked,
	ErrNotEarned,
	ErrAccountNotFound,
	ErrInvalidTransfer,
	ErrDailyNotReady,
	ErrUnknownGame,
}

// IsDomain - ошибка бизнес-правила, которую можно показать игроку как есть
func IsDomain(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}
