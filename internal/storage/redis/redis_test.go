package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/mbellotti/go-visit-counter/internal/storage/redis"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client)
}

func TestStore_RecordVisit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	total, err := s.RecordVisit(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = s.RecordVisit(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	total, err = s.RecordVisit(ctx, "/stats")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	counts, err := s.PathCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"/": 2, "/stats": 1}, counts)
}

func TestStore_Total(t *testing.T) {
	t.Run("zero before any visit", func(t *testing.T) {
		s := newTestStore(t)

		total, err := s.Total(context.Background())
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("matches recorded visits", func(t *testing.T) {
		s := newTestStore(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := s.RecordVisit(ctx, "/")
			require.NoError(t, err)
		}

		total, err := s.Total(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})
}

func TestStore_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := redisstore.New(client)

	assert.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
