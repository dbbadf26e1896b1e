package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// EconomyConfig - параметры экономики и игр из config.yaml
type EconomyConfig interface {
	StartingBalance() int64
	MinBet() int64
	MaxBet() int64
	DailyBase() int64
	DailyStreakBonus() int64
	DailyBonusCap() int64
	SessionTimeout() time.Duration
	HistoryLimit() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
}

// StorageConfig - выбор хранилища: postgres или sqlite
type StorageConfig interface {
	Driver() string
	SQLitePath() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

// AMQPConfig - публикация доменных событий. Пустой URL отключает публикацию
type AMQPConfig interface {
	URL() string
	Exchange() string
}

type LogConfig interface {
	Level() string
}
