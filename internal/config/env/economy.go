package env

import (
	"casino_engine/internal/config"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type economyYAML struct {
	Economy struct {
		StartingBalance int64 `yaml:"starting_balance"`
		MinBet          int64 `yaml:"min_bet"`
		MaxBet          int64 `yaml:"max_bet"`
		HistoryLimit    int   `yaml:"history_limit"`
		Daily           struct {
			Base        int64 `yaml:"base"`
			StreakBonus int64 `yaml:"streak_bonus"`
			BonusCap    int64 `yaml:"bonus_cap"`
		} `yaml:"daily"`
	} `yaml:"economy"`
	Sessions struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"sessions"`
}

type economyConfig struct {
	startingBalance int64
	minBet          int64
	maxBet          int64
	dailyBase       int64
	dailyBonus      int64
	dailyCap        int64
	sessionTimeout  time.Duration
	historyLimit    int
}

// DefaultEconomyConfig - значения по умолчанию, которые config.yaml может переопределить
func DefaultEconomyConfig() config.EconomyConfig {
	return defaultEconomy()
}

func defaultEconomy() *economyConfig {
	return &economyConfig{
		startingBalance: 1000,
		minBet:          1,
		maxBet:          1_000_000,
		dailyBase:       100,
		dailyBonus:      10,
		dailyCap:        200,
		sessionTimeout:  60 * time.Second,
		historyLimit:    20,
	}
}

// NewEconomyConfigFromYAML читает секции economy и sessions. Отсутствующий файл - значения по умолчанию
func NewEconomyConfigFromYAML(path string) (config.EconomyConfig, error) {
	cfg := defaultEconomy()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw economyYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	e := raw.Economy
	setPositive(&cfg.startingBalance, e.StartingBalance)
	setPositive(&cfg.minBet, e.MinBet)
	setPositive(&cfg.maxBet, e.MaxBet)
	setPositive(&cfg.dailyBase, e.Daily.Base)
	setPositive(&cfg.dailyBonus, e.Daily.StreakBonus)
	setPositive(&cfg.dailyCap, e.Daily.BonusCap)
	if e.HistoryLimit > 0 {
		cfg.historyLimit = e.HistoryLimit
	}
	if raw.Sessions.Timeout > 0 {
		cfg.sessionTimeout = raw.Sessions.Timeout
	}

	if cfg.minBet > cfg.maxBet {
		return nil, fmt.Errorf("min_bet %d exceeds max_bet %d", cfg.minBet, cfg.maxBet)
	}
	return cfg, nil
}

func setPositive(dst *int64, v int64) {
	if v > 0 {
		*dst = v
	}
}

func (c *economyConfig) StartingBalance() int64 { return c.startingBalance }
func (c *economyConfig) MinBet() int64 { return c.minBet }
func (c *economyConfig) MaxBet() int64 { return c.maxBet }
func (c *economyConfig) DailyBase() int64 { return c.dailyBase }
func (c *economyConfig) DailyStreakBonus() int64 { return c.dailyBonus }
func (c *economyConfig) DailyBonusCap() int64 { return c.dailyCap }
func (c *economyConfig) SessionTimeout() time.Duration { return c.sessionTimeout }
func (c *economyConfig) HistoryLimit() int { return c.historyLimit }
