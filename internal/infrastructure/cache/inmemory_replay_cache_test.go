package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/inventory"
)

func TestInMemoryReplayCache_GetSet(t *testing.T) {
	c := NewInMemoryReplayCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "key-1", &appinv.MovementResponse{
		MovementID:     11,
		ProductID:      5,
		MovementType:   inventory.MovementTypeTransfer,
		Quantity:       10,
		IdempotencyKey: "key-1",
	})

	got, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	assert.Equal(t, int64(11), got.MovementID)
	assert.True(t, got.Replayed, "cached hits always report replay")
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryReplayCache_Expiry(t *testing.T) {
	c := NewInMemoryReplayCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "key-1", &appinv.MovementResponse{MovementID: 11})

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get(ctx, "key-1")
	assert.False(t, ok)
}

func TestInMemoryReplayCache_CopyOnRead(t *testing.T) {
	c := NewInMemoryReplayCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "key-1", &appinv.MovementResponse{MovementID: 11, Quantity: 10})

	first, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	first.Quantity = 99

	second, ok := c.Get(ctx, "key-1")
	require.True(t, ok)
	assert.Equal(t, int64(10), second.Quantity, "readers must not mutate the cached value")
}
