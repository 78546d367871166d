package procurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptKeyFromHeader(t *testing.T) {
	k1 := ReceiptKeyFromHeader(1, "client-key")
	k2 := ReceiptKeyFromHeader(1, "client-key")
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	// Whitespace around the provided key does not change it.
	assert.Equal(t, k1, ReceiptKeyFromHeader(1, "  client-key  "))

	// The same key at another site is a different receipt.
	assert.NotEqual(t, k1, ReceiptKeyFromHeader(2, "client-key"))
}

func TestDeriveReceiptKey(t *testing.T) {
	at := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	lines := []ReceiptLineInput{
		{ProductID: 2, QtyReceived: 5},
		{ProductID: 1, QtyReceived: 10},
	}

	k1 := DeriveReceiptKey(1, 7, 3, at, lines)
	assert.Len(t, k1, 64)

	// Line order does not change the key.
	reordered := []ReceiptLineInput{lines[1], lines[0]}
	assert.Equal(t, k1, DeriveReceiptKey(1, 7, 3, at, reordered))

	// Any payload difference does.
	assert.NotEqual(t, k1, DeriveReceiptKey(1, 7, 4, at, lines))
	assert.NotEqual(t, k1, DeriveReceiptKey(1, 8, 3, at, lines))
	assert.NotEqual(t, k1, DeriveReceiptKey(1, 7, 3, at.Add(time.Second), lines))
	changed := []ReceiptLineInput{{ProductID: 2, QtyReceived: 6}, {ProductID: 1, QtyReceived: 10}}
	assert.NotEqual(t, k1, DeriveReceiptKey(1, 7, 3, at, changed))
}

func TestMovementKeyForReceipt(t *testing.T) {
	at := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	k1 := MovementKeyForReceipt("receipt-key", 1, 3, at, 10)
	assert.Len(t, k1, 64)
	assert.Equal(t, k1, MovementKeyForReceipt("receipt-key", 1, 3, at, 10))
	assert.NotEqual(t, k1, MovementKeyForReceipt("receipt-key", 2, 3, at, 10))
	assert.NotEqual(t, k1, MovementKeyForReceipt("other-receipt", 1, 3, at, 10))
	assert.NotEqual(t, k1, MovementKeyForReceipt("receipt-key", 1, 3, at, 11))
}
