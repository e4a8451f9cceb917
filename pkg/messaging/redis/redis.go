package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/doctor-api/pkg/messaging"
)

type RedisBroker struct {
	client *redis.Client
	logger zerolog.Logger
}

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

// NewRedisBroker connects to Redis and verifies the connection with a PING.
func NewRedisBroker(ctx context.Context, config Config, logger zerolog.Logger) (messaging.Broker, error) {
	opts, err := parseOptions(config)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBroker{
		client: client,
		logger: logger.With().Str("component", "redis-broker").Logger(),
	}, nil
}

func parseOptions(config Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.RetryBackoff > 0 {
		opts.MinRetryBackoff = config.RetryBackoff
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	if config.MinIdleConns > 0 {
		opts.MinIdleConns = config.MinIdleConns
	}
	return opts, nil
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	receivers, err := b.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	b.logger.Debug().Str("channel", channel).Int64("receivers", receivers).Msg("message published")
	return nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
