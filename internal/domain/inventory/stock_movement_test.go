package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared"
)

func TestValidateIdempotencyKey(t *testing.T) {
	assert.NoError(t, ValidateIdempotencyKey("transfer-2026-08-24-001"))
	assert.ErrorIs(t, ValidateIdempotencyKey(""), shared.ErrMissingIdempotency)
	assert.ErrorIs(t, ValidateIdempotencyKey("   "), shared.ErrMissingIdempotency)
	assert.ErrorIs(t, ValidateIdempotencyKey(" \t\n"), shared.ErrMissingIdempotency)
	assert.Error(t, ValidateIdempotencyKey(strings.Repeat("k", MaxIdempotencyKeyLen+1)))
	assert.NoError(t, ValidateIdempotencyKey(strings.Repeat("k", MaxIdempotencyKeyLen)))
}

func TestNewStockMovement(t *testing.T) {
	from := int64(10)
	to := int64(20)
	at := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	t.Run("creates a transfer movement", func(t *testing.T) {
		m, err := NewStockMovement(1, &from, &to, MovementTypeTransfer, 25, "restock", at, 7, "key-1")

		require.NoError(t, err)
		assert.Equal(t, MovementTypeTransfer, m.MovementType)
		assert.Equal(t, int64(25), m.Quantity)
		assert.Equal(t, &from, m.FromLocationID)
		assert.Equal(t, &to, m.ToLocationID)
		assert.Equal(t, "key-1", m.IdempotencyKey)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockMovement(1, &from, &to, MovementTypeTransfer, 0, "", at, 7, "key-2")
		assert.Error(t, err)
	})

	t.Run("rejects unknown movement type", func(t *testing.T) {
		_, err := NewStockMovement(1, &from, &to, MovementType("TELEPORT"), 5, "", at, 7, "key-3")
		assert.Error(t, err)
	})

	t.Run("rejects missing idempotency key", func(t *testing.T) {
		_, err := NewStockMovement(1, &from, &to, MovementTypeTransfer, 5, "", at, 7, "")
		assert.ErrorIs(t, err, shared.ErrMissingIdempotency)
	})
}

func TestMovementType_IsValid(t *testing.T) {
	for _, mt := range []MovementType{
		MovementTypeReceipt, MovementTypeIssue, MovementTypeTransfer,
		MovementTypeAdjustment, MovementTypeScrap, MovementTypeReserve,
		MovementTypeUnreserve,
	} {
		assert.True(t, mt.IsValid(), mt.String())
	}
	assert.False(t, MovementType("").IsValid())
	assert.False(t, MovementType("move").IsValid())
}
