// Package redis connects to the Redis instance that holds the high score.
// Repositories take the Client interface so tests can point it at miniredis.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Nil is returned by reads of a missing key
const Nil = redis.Nil

// Client is the subset of go-redis the repositories use
type Client interface {
	redis.UniversalClient
}

// Config describes the connection
type Config struct {
	Addr     string
	Password string
	DB       int

	// PoolSize of zero keeps the go-redis default
	PoolSize   int
	MaxRetries int
	// PingTimeout bounds Connect. Zero means two seconds.
	PingTimeout time.Duration
}

// Validate checks the address and database index
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Addr", c.Addr, vb)
	errors.ValidateRange("DB", c.DB, 0, 15, vb)
	if c.PoolSize < 0 {
		vb.Field("PoolSize", "must not be negative")
	}
	return vb.Build()
}

// NewClient builds a client without dialing
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("redis config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	}), nil
}

// Connect builds a client and pings it. The client is closed if the ping
// fails.
func Connect(ctx context.Context, cfg *Config) (Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.PingTimeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach redis").
			WithMeta("addr", cfg.Addr)
	}
	return client, nil
}
