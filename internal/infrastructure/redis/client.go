// Package redis provides the Redis client and a Redis-backed OTP store.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/flexibill/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client and checks the connection.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	}

	// Managed Redis with a password is reached over TLS.
	if cfg.Redis.Password != "" {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
