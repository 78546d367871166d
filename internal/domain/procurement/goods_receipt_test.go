package procurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostedGoodsReceipt(t *testing.T) {
	at := time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC)

	t.Run("receipt is posted on creation", func(t *testing.T) {
		r, err := NewPostedGoodsReceipt(1, 2, at, 7, "abc123", nil)

		require.NoError(t, err)
		assert.Equal(t, ReceiptStatusPosted, r.Status)
		require.NotNil(t, r.IdempotencyKey)
		assert.Equal(t, "abc123", *r.IdempotencyKey)
		require.NotNil(t, r.ReceivedAt)
		assert.Equal(t, at, *r.ReceivedAt)
	})

	t.Run("requires po, site and key", func(t *testing.T) {
		_, err := NewPostedGoodsReceipt(0, 2, at, 7, "abc", nil)
		assert.Error(t, err)

		_, err = NewPostedGoodsReceipt(1, 0, at, 7, "abc", nil)
		assert.Error(t, err)

		_, err = NewPostedGoodsReceipt(1, 2, at, 7, "", nil)
		assert.Error(t, err)
	})
}

func TestNewGoodsReceiptLine(t *testing.T) {
	t.Run("accepts damaged within received", func(t *testing.T) {
		line, err := NewGoodsReceiptLine(1, 5, 10, 2, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(10), line.QtyReceived)
		assert.Equal(t, int64(2), line.QtyDamaged)
	})

	t.Run("rejects damaged exceeding received", func(t *testing.T) {
		_, err := NewGoodsReceiptLine(1, 5, 3, 4, nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		_, err := NewGoodsReceiptLine(1, 5, -1, 0, nil, nil)
		assert.Error(t, err)

		_, err = NewGoodsReceiptLine(1, 5, 5, -1, nil, nil)
		assert.Error(t, err)
	})

	t.Run("zero received is a no-op line but legal", func(t *testing.T) {
		line, err := NewGoodsReceiptLine(1, 5, 0, 0, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), line.QtyReceived)
	})
}
