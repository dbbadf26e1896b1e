package env

import (
	"casino_engine/internal/config"
	"fmt"
	"os"
	"strings"
)

const (
	storageDriverEnvName = "STORAGE_DRIVER"
	sqlitePathEnvName    = "SQLITE_PATH"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "casino.db"
)

type storageConfig struct {
	driver     string
	sqlitePath string
}

func NewStorageConfig() (config.StorageConfig, error) {
	driver := strings.ToLower(os.Getenv(storageDriverEnvName))
	if len(driver) == 0 {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	path := os.Getenv(sqlitePathEnvName)
	if len(path) == 0 {
		path = defaultSQLitePath
	}
	return &storageConfig{driver: driver, sqlitePath: path}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}

func (cfg *storageConfig) SQLitePath() string {
	return cfg.sqlitePath
}
