package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPingTimeout = 5 * time.Second
	defaultDialTimeout = 5 * time.Second
	defaultReadTimeout = 3 * time.Second
)

// Config holds the connection settings for the session revocation store.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	ReadTimeout time.Duration
	PingTimeout time.Duration
}

// clientOptions maps Config onto go-redis options, filling unset timeouts.
// Writes share the read deadline: revocations are single SET commands.
func clientOptions(cfg Config) *redis.Options {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	read := cfg.ReadTimeout
	if read <= 0 {
		read = defaultReadTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  read,
		WriteTimeout: read,
	}
}

// Connect opens the Redis client backing the session store and pings it.
// The client is closed again when the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s db=%d: %w", cfg.Addr, cfg.DB, err)
	}
	return client, nil
}

// OpenSessionStore connects to Redis and wraps the client in a SessionStore.
// The raw client is returned too so the caller owns Close and readiness checks.
func OpenSessionStore(ctx context.Context, cfg Config) (*SessionStore, *redis.Client, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewSessionStore(client), client, nil
}
