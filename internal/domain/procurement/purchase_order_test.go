package procurement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    POStatus
		to      POStatus
		allowed bool
	}{
		{POStatusDraft, POStatusApproved, true},
		{POStatusDraft, POStatusCancelled, true},
		{POStatusDraft, POStatusShipped, false},
		{POStatusDraft, POStatusClosed, false},
		{POStatusApproved, POStatusShipped, true},
		{POStatusApproved, POStatusPartial, true},
		{POStatusApproved, POStatusClosed, true},
		{POStatusApproved, POStatusCancelled, true},
		{POStatusApproved, POStatusDraft, false},
		{POStatusShipped, POStatusPartial, true},
		{POStatusShipped, POStatusClosed, true},
		{POStatusShipped, POStatusCancelled, true},
		{POStatusShipped, POStatusApproved, false},
		{POStatusPartial, POStatusClosed, true},
		{POStatusPartial, POStatusCancelled, true},
		{POStatusPartial, POStatusShipped, false},
		{POStatusClosed, POStatusCancelled, false},
		{POStatusCancelled, POStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPOStatus_IsEngaged(t *testing.T) {
	assert.False(t, POStatusDraft.IsEngaged())
	assert.True(t, POStatusApproved.IsEngaged())
	assert.True(t, POStatusShipped.IsEngaged())
	assert.True(t, POStatusPartial.IsEngaged())
	assert.False(t, POStatusClosed.IsEngaged())
	assert.False(t, POStatusCancelled.IsEngaged())
}

func TestNewPurchaseOrder(t *testing.T) {
	po, err := NewPurchaseOrder("PO-2026-001", 3, 1, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, POStatusDraft, po.Status)
	assert.Equal(t, "PO-2026-001", po.PONumber)

	_, err = NewPurchaseOrder("", 3, 1, nil, nil)
	assert.Error(t, err)

	_, err = NewPurchaseOrder("PO-2026-002", 0, 1, nil, nil)
	assert.Error(t, err)
}

func TestPurchaseOrder_Approve(t *testing.T) {
	po, err := NewPurchaseOrder("PO-2026-001", 3, 1, nil, nil)
	require.NoError(t, err)

	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	require.NoError(t, po.Approve(42, at))

	assert.Equal(t, POStatusApproved, po.Status)
	require.NotNil(t, po.ApprovedAt)
	assert.Equal(t, at, *po.ApprovedAt)
	require.NotNil(t, po.ApprovedBy)
	assert.Equal(t, int64(42), *po.ApprovedBy)

	// already approved, edge not in the graph
	assert.Error(t, po.Approve(42, at))
}

func TestPurchaseOrder_TransitionTo_Terminal(t *testing.T) {
	po, err := NewPurchaseOrder("PO-2026-001", 3, 1, nil, nil)
	require.NoError(t, err)
	require.NoError(t, po.TransitionTo(POStatusCancelled))

	assert.Error(t, po.TransitionTo(POStatusApproved))
	assert.Error(t, po.TransitionTo(POStatusClosed))
}

func TestPurchaseOrder_ProductIDs(t *testing.T) {
	po := &PurchaseOrder{Lines: []PurchaseOrderLine{
		{ProductID: 5, QtyOrdered: 10},
		{ProductID: 9, QtyOrdered: 3},
		{ProductID: 5, QtyOrdered: 2},
	}}

	assert.ElementsMatch(t, []int64{5, 9}, po.ProductIDs())
	assert.True(t, po.HasProduct(9))
	assert.False(t, po.HasProduct(7))
}

func TestNewPurchaseOrderLine(t *testing.T) {
	line, err := NewPurchaseOrderLine(1, 5, 100, decimal.NewFromFloat(12.50))
	require.NoError(t, err)
	assert.Equal(t, int64(100), line.QtyOrdered)

	_, err = NewPurchaseOrderLine(1, 5, 0, decimal.Zero)
	assert.Error(t, err)

	_, err = NewPurchaseOrderLine(1, 5, 10, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
