// Package events - доменные события после коммита: bet.settled, transfer.completed и т.д.
package events

import (
	"context"
	"time"
)

const (
	BetSettled          = "bet.settled"
	TransferCompleted   = "transfer.completed"
	DailyClaimed        = "daily.claimed"
	AchievementUnlocked = "achievement.unlocked"
	SessionFinished     = "session.finished"
)

type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	AccountID int64     `json:"account_id"`
	At        time.Time `json:"at"`
	Payload   any       `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type nop struct{}

// Nop - издатель, который ничего не отправляет
func Nop() Publisher { return nop{} }

func (nop) Publish(context.Context, Event) error { return nil }
func (nop) Close() error { return nil }
