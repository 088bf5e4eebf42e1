package cart

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorage_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	storage := NewRedisStorage(client, time.Minute)
	session := uuid.NewString()
	itemsKey, discountKey := ItemsKey(session), DiscountKey(session)

	require.NoError(t, storage.Save(ctx, map[string]string{itemsKey: "[]", discountKey: "MENTOR8"}))
	got, err := storage.Load(ctx, itemsKey, discountKey, "cart:missing:items")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{itemsKey: "[]", discountKey: "MENTOR8"}, got)

	ttl, err := client.TTL(ctx, itemsKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, storage.Delete(ctx, itemsKey, discountKey))
	got, err = storage.Load(ctx, itemsKey)
	require.NoError(t, err)
	assert.Empty(t, got)
}
