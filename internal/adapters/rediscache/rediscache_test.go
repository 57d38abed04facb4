package rediscache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCache_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	c := New(client, "authcore-test")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "profile:1", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "profile:1"))

	got, err = c.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_MissReturnsNil(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	c := New(client, "authcore-test")

	got, err := c.Get(context.Background(), "never-set")
	require.NoError(t, err)
	assert.Nil(t, got)
}
