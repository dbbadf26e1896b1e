package env

import (
	"casino_engine/internal/config"
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	dsnEnvName      = "PG_DSN"
	maxConnsEnvName = "PG_MAX_CONNS"

	defaultMaxConns = 10
)

type pgConfig struct {
	dsn      string
	maxConns int32
}

// NewPGConfig читает DSN и размер пула; PG_MAX_CONNS необязателен
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnEnvName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	maxConns := int32(defaultMaxConns)
	if raw := os.Getenv(maxConnsEnvName); len(raw) != 0 {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q", maxConnsEnvName, raw)
		}
		maxConns = int32(n)
	}

	return &pgConfig{dsn: dsn, maxConns: maxConns}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}
