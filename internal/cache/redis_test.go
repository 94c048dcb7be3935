package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specshare/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		client, err := NewRedisClient(config.RedisConfig{})
		assert.ErrorIs(t, err, ErrEmptyAddress)
		assert.Nil(t, client)
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		defer client.Close()
	})

	t.Run("ping failure", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		client, err := NewRedisClient(config.RedisConfig{Addr: addr})
		assert.ErrorContains(t, err, "redis ping failed")
		assert.Nil(t, client)
	})
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "spec:content:abc", []byte("# body")))

	got, err := c.Get(ctx, "spec:content:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("# body"), got)

	assert.True(t, mr.Exists("specshare:spec:content:abc"))
	assert.Equal(t, time.Hour, mr.TTL("specshare:spec:content:abc"))

	mr.FastForward(2 * time.Hour)
	_, err = c.Get(ctx, "spec:content:abc")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	c := NewRedisCache(client, time.Minute)
	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
