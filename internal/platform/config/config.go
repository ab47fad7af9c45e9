package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends selectable at startup.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Server captures process level configuration. Game settings such as the
// admin UUIDs and rate limit policies live in the store, not here.
type Server struct {
	Addr           string        `env:"ENIGMA_ADDR, default=:8080"`
	Environment    string        `env:"ENVIRONMENT, default=dev"`
	LogLevel       string        `env:"LOG_LEVEL, default=info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`

	Storage  Storage
	Redis    RedisConfig
	Database DatabaseConfig
	Seed     SeedConfig

	LockGaugeInterval time.Duration `env:"LOCK_GAUGE_INTERVAL, default=30s"`
}

// Storage selects and bounds the key/value backend.
type Storage struct {
	Backend    string        `env:"STORAGE_BACKEND, default=memory"`
	KeyPrefix  string        `env:"KEY_PREFIX, default=puzzle"`
	Timeout    time.Duration `env:"STORE_TIMEOUT, default=2s"`
	DataDir    string        `env:"DATA_DIR, default=./data"`
	SQLitePath string        `env:"SQLITE_PATH, default=./data/enigma.db"`

	// BreakerFailures opens the store circuit for remote backends. 0 disables it.
	BreakerFailures int `env:"STORE_BREAKER_FAILURES, default=5"`
}

// RedisConfig configures the go-redis client.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE, default=10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS, default=2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT, default=3s"`
}

// DatabaseConfig configures the postgres pool.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS, default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS, default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=5m"`
}

// SeedConfig points at optional TOML puzzle content.
type SeedConfig struct {
	File  string `env:"SEED_FILE"`
	Watch bool   `env:"SEED_WATCH, default=false"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv(ctx context.Context) (Server, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (Server, error) {
	var cfg Server
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Server{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the process runs in a production environment.
func (c Server) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
