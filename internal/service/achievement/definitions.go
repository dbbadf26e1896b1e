package achievement

import "casino_engine/internal/model"

// Definition - достижение и условие его получения по статистике счёта
type Definition struct {
	model.Achievement
	Predicate func(model.Stats) bool
}

var definitions = []Definition{
	{
		Achievement: model.Achievement{Key: "first_win", Name: "First Win", Description: "Win your first game", Reward: 100},
		Predicate:   func(s model.Stats) bool { return s.GamesWon >= 1 },
	},
	{
		Achievement: model.Achievement{Key: "regular", Name: "Regular", Description: "Play 10 games", Reward: 250},
		Predicate:   func(s model.Stats) bool { return s.GamesPlayed >= 10 },
	},
	{
		Achievement: model.Achievement{Key: "veteran", Name: "Veteran", Description: "Play 100 games", Reward: 1000},
		Predicate:   func(s model.Stats) bool { return s.GamesPlayed >= 100 },
	},
	{
		Achievement: model.Achievement{Key: "high_roller", Name: "High Roller", Description: "Win 10000 coins in total", Reward: 2000},
		Predicate:   func(s model.Stats) bool { return s.TotalWon >= 10_000 },
	},
	{
		Achievement: model.Achievement{Key: "rich", Name: "Rich", Description: "Hold 10000 coins", Reward: 1000},
		Predicate:   func(s model.Stats) bool { return s.Balance >= 10_000 },
	},
	{
		Achievement: model.Achievement{Key: "millionaire", Name: "Millionaire", Description: "Hold 1000000 coins", Reward: 50_000},
		Predicate:   func(s model.Stats) bool { return s.Balance >= 1_000_000 },
	},
	{
		Achievement: model.Achievement{Key: "unlucky", Name: "Unlucky", Description: "Lose 5000 coins in total", Reward: 500},
		Predicate:   func(s model.Stats) bool { return s.TotalLost >= 5000 },
	},
	{
		Achievement: model.Achievement{Key: "loyal", Name: "Loyal", Description: "Claim the daily reward 7 days in a row", Reward: 700},
		Predicate:   func(s model.Stats) bool { return s.DailyStreak >= 7 },
	},
	{
		Achievement: model.Achievement{Key: "devoted", Name: "Devoted", Description: "Claim the daily reward 30 days in a row", Reward: 3000},
		Predicate:   func(s model.Stats) bool { return s.DailyStreak >= 30 },
	},
}

// Definitions - копия статического списка достижений
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

func lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
