package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/doctor-api/pkg/messaging"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions(Config{
		URL:          "redis://:pw@cache.internal:6380/2",
		PoolSize:     7,
		MinIdleConns: 2,
		RetryBackoff: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2, opts.MinIdleConns)
	assert.Equal(t, 20*time.Millisecond, opts.MinRetryBackoff)
}

func TestParseOptionsRejectsBadURL(t *testing.T) {
	_, err := parseOptions(Config{URL: "http://not-redis"})
	assert.Error(t, err)
}

// Runs only when a Redis server is reachable through REDIS_URL.
func TestPublish(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	broker, err := NewRedisBroker(ctx, Config{URL: url}, zerolog.Nop())
	require.NoError(t, err)
	defer broker.Close()

	err = broker.Publish(ctx, "doctor.test", messaging.Message{Type: "ping", Payload: map[string]string{"k": "v"}})
	assert.NoError(t, err)
}
