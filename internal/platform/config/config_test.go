package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	s.Require().NoError(err)
	s.Equal(":8080", cfg.Addr)
	s.Equal(BackendMemory, cfg.Storage.Backend)
	s.Equal("puzzle", cfg.Storage.KeyPrefix)
	s.Equal(2*time.Second, cfg.Storage.Timeout)
	s.Equal(5, cfg.Storage.BreakerFailures)
	s.Equal(30*time.Second, cfg.LockGaugeInterval)
	s.False(cfg.IsProduction())
}

func (s *ConfigSuite) TestBackendRequirements() {
	s.Run("redis needs a url", func() {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"STORAGE_BACKEND": "redis",
		}))
		s.ErrorContains(err, "REDIS_URL")
	})

	s.Run("postgres needs a url", func() {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"STORAGE_BACKEND": "postgres",
		}))
		s.ErrorContains(err, "DATABASE_URL")
	})

	s.Run("unknown backend", func() {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"STORAGE_BACKEND": "vercel-kv",
		}))
		s.ErrorContains(err, "unknown STORAGE_BACKEND")
	})

	s.Run("overrides are applied", func() {
		cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
			"STORAGE_BACKEND": "redis",
			"REDIS_URL":       "redis://localhost:6379/0",
			"STORE_TIMEOUT":   "750ms",
			"ENVIRONMENT":     "production",
		}))
		s.Require().NoError(err)
		s.Equal(750*time.Millisecond, cfg.Storage.Timeout)
		s.True(cfg.IsProduction())
	})
}

func (s *ConfigSuite) TestRejectsNonPositiveTimeout() {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_TIMEOUT": "0s",
	}))
	s.ErrorContains(err, "STORE_TIMEOUT")
}
