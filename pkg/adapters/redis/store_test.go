package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/replica/pkg/adapters/redis"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setupRedis(t)
	store := redis.NewFromClient(client)
	ports.RunRunStoreContract(t, store)
}

func TestRedisStore_Keys(t *testing.T) {
	mr, client := setupRedis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Run{ID: "r1", StartedAt: time.Now()}))

	assert.True(t, mr.Exists("test:run:r1"))
	members, err := mr.ZMembers("test:runs")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, members)

	require.NoError(t, store.Delete(ctx, "r1"))
	assert.False(t, mr.Exists("test:run:r1"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setupRedis(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Run{ID: "short-lived", StartedAt: time.Now()}))

	runs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	runs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	// The stale index entry is pruned by List.
	members, err := mr.ZMembers(redis.DefaultPrefix + "runs")
	if err == nil {
		assert.Empty(t, members)
	}
}
