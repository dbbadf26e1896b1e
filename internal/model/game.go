package model

import "time"

type GameType string

const (
	GameRoulette   GameType = "roulette"
	GameDice       GameType = "dice"
	GameSlots      GameType = "slots"
	GameTigrinho   GameType = "tigrinho"
	GameCrash      GameType = "crash"
	GameDouble     GameType = "double"
	GameLimbo      GameType = "limbo"
	GameKeno       GameType = "keno"
	GameBaccarat   GameType = "baccarat"
	GameHiLo       GameType = "hilo"
	GameCoinFlip   GameType = "coinflip"
	GameWheel      GameType = "wheel"
	GameScratch    GameType = "scratch"
	GamePlinko     GameType = "plinko"
	GameBlackjack  GameType = "blackjack"
	GameMines      GameType = "mines"
	GameTower      GameType = "tower"
	GameVideoPoker GameType = "videopoker"
)

// SettleRequest - исход ставки, который нужно атомарно применить к счёту
type SettleRequest struct {
	AccountID int64
	BetAmount int64
	NetChange int64
	Game      GameType
	Result    Result
	// StakeHeld - ставка уже списана через HoldStake, при расчёте зачисляется только выплата
	StakeHeld bool
}

// Settlement - результат успешного расчёта ставки
type Settlement struct {
	AccountID int64
	BetAmount int64
	NetChange int64
	Balance   int64
	Game      GameType
	Result    Result
	Unlocked  []Achievement
}

type Transfer struct {
	From        int64
	To          int64
	Amount      int64
	FromBalance int64
	ToBalance   int64
	Unlocked    []Achievement
}

type DailyClaim struct {
	Reward   int64
	Streak   int
	Balance  int64
	NextAt   time.Time
	Unlocked []Achievement
}

// RTPStats - наблюдаемая доля выплат игры за всё время и в окне последних раундов, в процентах
type RTPStats struct {
	Game        GameType
	Rounds      int64
	TotalBet    int64
	TotalPayout int64
	RTP         float64
	WindowRTP   float64
	WindowSize  int
}
