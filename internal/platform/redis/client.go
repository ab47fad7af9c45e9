package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"enigma/internal/platform/config"
)

// Client wraps the go-redis client with health checking and pool metrics.
type Client struct {
	*redis.Client
	lastStats *redis.PoolStats

	poolHits       prometheus.Counter
	poolMisses     prometheus.Counter
	poolTimeouts   prometheus.Counter
	poolTotalConns prometheus.Gauge
	poolIdleConns  prometheus.Gauge
}

// New connects using cfg and registers pool metrics on reg.
func New(ctx context.Context, cfg config.RedisConfig, reg prometheus.Registerer) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis url is empty")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return Wrap(client, reg), nil
}

// Wrap adapts an existing go-redis client and registers pool metrics on reg.
func Wrap(client *redis.Client, reg prometheus.Registerer) *Client {
	f := promauto.With(reg)
	return &Client{
		Client: client,
		poolHits: f.NewCounter(prometheus.CounterOpts{
			Name: "enigma_redis_pool_hits_total",
			Help: "Number of times a connection was found in the pool",
		}),
		poolMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "enigma_redis_pool_misses_total",
			Help: "Number of times a connection was not found in the pool",
		}),
		poolTimeouts: f.NewCounter(prometheus.CounterOpts{
			Name: "enigma_redis_pool_timeouts_total",
			Help: "Number of times a connection was not obtained due to timeout",
		}),
		poolTotalConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "enigma_redis_pool_total_conns",
			Help: "Number of total connections in the pool",
		}),
		poolIdleConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "enigma_redis_pool_idle_conns",
			Help: "Number of idle connections in the pool",
		}),
	}
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats publishes pool statistics. Counters are advanced by the
// delta since the previous call.
func (c *Client) RecordPoolStats() {
	stats := c.PoolStats()

	c.poolTotalConns.Set(float64(stats.TotalConns))
	c.poolIdleConns.Set(float64(stats.IdleConns))

	var prev redis.PoolStats
	if c.lastStats != nil {
		prev = *c.lastStats
	}
	if stats.Hits > prev.Hits {
		c.poolHits.Add(float64(stats.Hits - prev.Hits))
	}
	if stats.Misses > prev.Misses {
		c.poolMisses.Add(float64(stats.Misses - prev.Misses))
	}
	if stats.Timeouts > prev.Timeouts {
		c.poolTimeouts.Add(float64(stats.Timeouts - prev.Timeouts))
	}
	c.lastStats = stats
}
