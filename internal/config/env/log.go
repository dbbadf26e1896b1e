package env

import (
	"casino_engine/internal/config"
	"os"
)

const logLevelEnvName = "LOG_LEVEL"

type logConfig struct {
	level string
}

// NewLogConfig - уровень логирования, пустой означает info
func NewLogConfig() config.LogConfig {
	return &logConfig{level: os.Getenv(logLevelEnvName)}
}

func (cfg *logConfig) Level() string {
	return cfg.level
}
