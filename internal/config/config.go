// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
)

// Storage backends.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is the process-wide configuration.
type Config struct {
	Storage   StorageConfig
	Log       LogConfig
	Normalize bool
}

// StorageConfig selects and configures the address repository.
type StorageConfig struct {
	Backend        string
	Dir            string
	DatabaseURL    string
	MaxConnections int
	RedisURL       string
	RedisKeyPrefix string
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string
	Pretty bool
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Storage: StorageConfig{
			Backend:        strings.ToLower(GetEnv("ADDRCONV_STORAGE", StorageFile)),
			Dir:            GetEnv("STORAGE_DIR", "./json_storage"),
			DatabaseURL:    GetEnv("DATABASE_URL", postgresDSN()),
			MaxConnections: GetEnvInt("DB_MAX_CONNECTIONS", 10),
			RedisURL:       GetEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisKeyPrefix: GetEnv("REDIS_KEY_PREFIX", "address:"),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Pretty: GetEnvBool("LOG_PRETTY", true),
		},
		Normalize: GetEnvBool("ADDRCONV_NORMALIZE", false),
	}
}

// Validate rejects unknown storage backends.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile, StorageMemory, StoragePostgres, StorageRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q: must be one of file, memory, postgres, redis", c.Storage.Backend)
	}
}

// postgresDSN builds a DSN from the libpq PG* variables.
func postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		GetEnv("PGHOST", "localhost"),
		GetEnv("PGPORT", "5432"),
		GetEnv("PGUSER", "addrconv"),
		GetEnv("PGPASSWORD", "addrconv"),
		GetEnv("PGDATABASE", "addrconv"),
		GetEnv("PGSSLMODE", "disable"),
	)
}
