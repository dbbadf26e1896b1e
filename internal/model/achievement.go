package model

import "time"

// Achievement - статическое описание достижения
type Achievement struct {
	Key         string
	Name        string
	Description string
	Reward      int64
}

// AchievementUnlock - факт получения достижения. Одна запись на пару (счёт, достижение)
type AchievementUnlock struct {
	AccountID  int64
	Key        string
	UnlockedAt time.Time
}

// UnlockedAchievement - достижение счёта вместе с моментом получения
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time
}
