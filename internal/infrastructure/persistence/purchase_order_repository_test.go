package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

func setupProcurementTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderLine{},
		&procurement.GoodsReceipt{},
		&procurement.GoodsReceiptLine{},
	)
	require.NoError(t, err)
	return db
}

func createPOWithStatus(t *testing.T, db *gorm.DB, poNumber string, siteID int64, status procurement.POStatus, lines map[int64]int64) *procurement.PurchaseOrder {
	t.Helper()
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	po, err := procurement.NewPurchaseOrder(poNumber, 1, siteID, nil, nil)
	require.NoError(t, err)
	for productID, qty := range lines {
		line, err := procurement.NewPurchaseOrderLine(0, productID, qty, decimal.NewFromFloat(4.50))
		require.NoError(t, err)
		po.Lines = append(po.Lines, *line)
	}
	require.NoError(t, repo.Create(ctx, po))

	if status != procurement.POStatusDraft {
		po.Status = status
		require.NoError(t, repo.Save(ctx, po))
	}
	return po
}

func postReceipt(t *testing.T, db *gorm.DB, poID, siteID int64, key string, lines map[int64][2]int64) *procurement.GoodsReceipt {
	t.Helper()
	repo := NewGormGoodsReceiptRepository(db)
	ctx := context.Background()

	receipt, err := procurement.NewPostedGoodsReceipt(poID, siteID, time.Now(), 7, key, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, receipt))

	for productID, qty := range lines {
		line, err := procurement.NewGoodsReceiptLine(receipt.ID, productID, qty[0], qty[1], nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.CreateLine(ctx, line))
	}
	return receipt
}

func TestGormPurchaseOrderRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reads back an order with lines", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormPurchaseOrderRepository(db)

		po := createPOWithStatus(t, db, "PO-2026-001", 1, procurement.POStatusDraft, map[int64]int64{5: 100})

		found, err := repo.FindByID(ctx, po.ID)
		require.NoError(t, err)
		assert.Equal(t, "PO-2026-001", found.PONumber)
		assert.Equal(t, procurement.POStatusDraft, found.Status)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, int64(100), found.Lines[0].QtyOrdered)
		assert.True(t, found.Lines[0].UnitCost.Equal(decimal.NewFromFloat(4.50)))
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormPurchaseOrderRepository(db)

		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByPONumber(ctx, "PO-NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("filters by status", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormPurchaseOrderRepository(db)

		createPOWithStatus(t, db, "PO-A", 1, procurement.POStatusDraft, map[int64]int64{5: 10})
		createPOWithStatus(t, db, "PO-B", 1, procurement.POStatusApproved, map[int64]int64{5: 20})

		pos, err := repo.FindAll(ctx, shared.Filter{
			Filters: map[string]any{"status": string(procurement.POStatusApproved)},
		})
		require.NoError(t, err)
		require.Len(t, pos, 1)
		assert.Equal(t, "PO-B", pos[0].PONumber)
	})

	t.Run("sums ordered quantity over engaged orders only", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormPurchaseOrderRepository(db)

		createPOWithStatus(t, db, "PO-DRAFT", 1, procurement.POStatusDraft, map[int64]int64{5: 1000})
		createPOWithStatus(t, db, "PO-APPROVED", 1, procurement.POStatusApproved, map[int64]int64{5: 100, 6: 40})
		createPOWithStatus(t, db, "PO-PARTIAL", 1, procurement.POStatusPartial, map[int64]int64{5: 60})
		createPOWithStatus(t, db, "PO-CANCELLED", 1, procurement.POStatusCancelled, map[int64]int64{5: 500})
		createPOWithStatus(t, db, "PO-OTHER-SITE", 2, procurement.POStatusApproved, map[int64]int64{5: 300})

		sums, err := repo.SumOrderedByProduct(ctx, 1, []int64{5, 6, 7})
		require.NoError(t, err)
		assert.Equal(t, int64(160), sums[5])
		assert.Equal(t, int64(40), sums[6])
		_, ok := sums[7]
		assert.False(t, ok)
	})

	t.Run("empty product list short-circuits", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormPurchaseOrderRepository(db)

		sums, err := repo.SumOrderedByProduct(ctx, 1, nil)
		require.NoError(t, err)
		assert.Empty(t, sums)
	})
}

func TestGormGoodsReceiptRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("finds a receipt by idempotency key", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormGoodsReceiptRepository(db)

		po := createPOWithStatus(t, db, "PO-1", 1, procurement.POStatusApproved, map[int64]int64{5: 100})
		receipt := postReceipt(t, db, po.ID, 1, "recv-key-1", map[int64][2]int64{5: {30, 2}})

		found, err := repo.FindByIdempotencyKey(ctx, "recv-key-1")
		require.NoError(t, err)
		assert.Equal(t, receipt.ID, found.ID)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, int64(30), found.Lines[0].QtyReceived)
		assert.Equal(t, int64(2), found.Lines[0].QtyDamaged)

		_, err = repo.FindByIdempotencyKey(ctx, "recv-key-missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate key is an idempotency conflict", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormGoodsReceiptRepository(db)

		po := createPOWithStatus(t, db, "PO-1", 1, procurement.POStatusApproved, map[int64]int64{5: 100})
		postReceipt(t, db, po.ID, 1, "recv-key-1", map[int64][2]int64{5: {30, 0}})

		duplicate, err := procurement.NewPostedGoodsReceipt(po.ID, 1, time.Now(), 7, "recv-key-1", nil)
		require.NoError(t, err)

		err = repo.Create(ctx, duplicate)
		assert.ErrorIs(t, err, shared.ErrIdempotencyConflict)
	})

	t.Run("sums usable quantity over posted receipts", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormGoodsReceiptRepository(db)

		po := createPOWithStatus(t, db, "PO-1", 1, procurement.POStatusPartial, map[int64]int64{5: 200, 6: 50})
		postReceipt(t, db, po.ID, 1, "recv-1", map[int64][2]int64{5: {30, 2}})
		postReceipt(t, db, po.ID, 1, "recv-2", map[int64][2]int64{5: {20, 0}, 6: {10, 10}})

		cancelled := postReceipt(t, db, po.ID, 1, "recv-3", map[int64][2]int64{5: {500, 0}})
		cancelled.Status = procurement.ReceiptStatusCancelled
		require.NoError(t, db.Omit("Lines").Save(cancelled).Error)

		otherSite := createPOWithStatus(t, db, "PO-2", 2, procurement.POStatusApproved, map[int64]int64{5: 100})
		postReceipt(t, db, otherSite.ID, 2, "recv-4", map[int64][2]int64{5: {40, 0}})

		sums, err := repo.SumPostedReceivedByProduct(ctx, 1, []int64{5, 6})
		require.NoError(t, err)
		assert.Equal(t, int64(48), sums[5])
		assert.Equal(t, int64(0), sums[6])
	})

	t.Run("sums received per product for one order", func(t *testing.T) {
		db := setupProcurementTestDB(t)
		repo := NewGormGoodsReceiptRepository(db)

		po := createPOWithStatus(t, db, "PO-1", 1, procurement.POStatusShipped, map[int64]int64{5: 100, 6: 40})
		postReceipt(t, db, po.ID, 1, "recv-1", map[int64][2]int64{5: {60, 5}})
		postReceipt(t, db, po.ID, 1, "recv-2", map[int64][2]int64{5: {40, 0}, 6: {40, 0}})

		sums, err := repo.SumReceivedForPO(ctx, po.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), sums[5])
		assert.Equal(t, int64(40), sums[6])
	})
}
