package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAside_LoadsOnceThenServesFromCache(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"math", "maths"}, nil
	}

	first, err := Aside(ctx, client, "tags:ma", time.Minute, load)
	require.NoError(t, err)
	second, err := Aside(ctx, client, "tags:ma", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("tags:ma"))

	mr.FastForward(2 * time.Minute)
	_, err = Aside(ctx, client, "tags:ma", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	mr, client := newTestRedis(t)

	_, err := Aside(context.Background(), client, "k", time.Minute, func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestAside_NilClientCallsLoad(t *testing.T) {
	v, err := Aside(context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestInvalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("tags:a", "1"))
	require.NoError(t, mr.Set("tags:b", "1"))
	require.NoError(t, mr.Set("other", "1"))

	Invalidate(context.Background(), client, "tags:*")

	assert.False(t, mr.Exists("tags:a"))
	assert.False(t, mr.Exists("tags:b"))
	assert.True(t, mr.Exists("other"))
}

func TestConnect_FailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr)
	assert.Error(t, err)
}
