package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/memory"
)

type rebuilderFixture struct {
	rebuilder *OnOrderRebuilder
	scope     *NoOpTransactionScope
	stocks    *memory.StockLevelRepository
	locations *memory.LocationRepository
	pos       *memory.PurchaseOrderRepository
	receipts  *memory.GoodsReceiptRepository
	siteID    int64
}

func newRebuilderFixture(t *testing.T) *rebuilderFixture {
	t.Helper()
	stocks := memory.NewStockLevelRepository()
	movements := memory.NewStockMovementRepository()
	locations := memory.NewLocationRepository()
	pos := memory.NewPurchaseOrderRepository()
	receipts := memory.NewGoodsReceiptRepository()
	shipments := memory.NewShipmentRepository()
	audits := memory.NewAuditLogRepository()

	scope := NewNoOpTransactionScope(stocks, movements, locations, pos, receipts, shipments, audits)
	return &rebuilderFixture{
		rebuilder: NewOnOrderRebuilder(scope),
		scope:     scope,
		stocks:    stocks,
		locations: locations,
		pos:       pos,
		receipts:  receipts,
		siteID:    1,
	}
}

func (f *rebuilderFixture) addLocation(t *testing.T, name string, locType masterdata.LocationType) *masterdata.Location {
	t.Helper()
	loc, err := masterdata.NewLocation(f.siteID, name, locType)
	require.NoError(t, err)
	require.NoError(t, f.locations.Create(context.Background(), loc))
	return loc
}

func (f *rebuilderFixture) addPO(t *testing.T, number string, status procurement.POStatus, productID, qty int64) *procurement.PurchaseOrder {
	t.Helper()
	po, err := procurement.NewPurchaseOrder(number, 1, f.siteID, nil, nil)
	require.NoError(t, err)
	line, err := procurement.NewPurchaseOrderLine(0, productID, qty, decimal.NewFromInt(10))
	require.NoError(t, err)
	po.Lines = append(po.Lines, *line)
	po.Status = status
	require.NoError(t, f.pos.Create(context.Background(), po))
	return po
}

func (f *rebuilderFixture) addPostedReceipt(t *testing.T, key string, poID, productID, received, damaged int64) {
	t.Helper()
	ctx := context.Background()
	gr, err := procurement.NewPostedGoodsReceipt(poID, f.siteID, time.Now(), 1, key, nil)
	require.NoError(t, err)
	require.NoError(t, f.receipts.Create(ctx, gr))
	line, err := procurement.NewGoodsReceiptLine(gr.ID, productID, received, damaged, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.receipts.CreateLine(ctx, line))
}

func (f *rebuilderFixture) onOrderAt(t *testing.T, productID, locationID int64) int64 {
	t.Helper()
	level, err := f.stocks.FindOrCreateForUpdate(context.Background(), productID, locationID)
	require.NoError(t, err)
	return level.QtyOnOrder
}

func TestOnOrderRebuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("only engaged purchase orders count", func(t *testing.T) {
		f := newRebuilderFixture(t)
		dock := f.addLocation(t, masterdata.InboundDockName, masterdata.LocationTypeDock)

		f.addPO(t, "PO-1", procurement.POStatusDraft, 5, 100)
		f.addPO(t, "PO-2", procurement.POStatusApproved, 5, 40)
		f.addPO(t, "PO-3", procurement.POStatusShipped, 5, 25)
		f.addPO(t, "PO-4", procurement.POStatusCancelled, 5, 500)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		assert.Equal(t, int64(65), f.onOrderAt(t, 5, dock.ID))
	})

	t.Run("posted receipts reduce the projection regardless of PO status", func(t *testing.T) {
		f := newRebuilderFixture(t)
		dock := f.addLocation(t, masterdata.InboundDockName, masterdata.LocationTypeDock)

		po := f.addPO(t, "PO-1", procurement.POStatusPartial, 5, 100)
		f.addPostedReceipt(t, "gr-1", po.ID, 5, 30, 5)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		// 100 ordered minus (30 received - 5 damaged)
		assert.Equal(t, int64(75), f.onOrderAt(t, 5, dock.ID))
	})

	t.Run("a closed PO's posted receipt still reduces the sum", func(t *testing.T) {
		f := newRebuilderFixture(t)
		dock := f.addLocation(t, masterdata.InboundDockName, masterdata.LocationTypeDock)

		// The closed PO no longer contributes to the ordered side, but its
		// posted receipt keeps reducing the received side. Consulting the
		// parent PO's status instead of the receipt's would yield 10 here.
		closed := f.addPO(t, "PO-1", procurement.POStatusClosed, 5, 5)
		f.addPostedReceipt(t, "gr-1", closed.ID, 5, 5, 0)
		f.addPO(t, "PO-2", procurement.POStatusApproved, 5, 10)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		assert.Equal(t, int64(5), f.onOrderAt(t, 5, dock.ID))
	})

	t.Run("over-receipt clamps to zero", func(t *testing.T) {
		f := newRebuilderFixture(t)
		dock := f.addLocation(t, masterdata.InboundDockName, masterdata.LocationTypeDock)

		po := f.addPO(t, "PO-1", procurement.POStatusPartial, 5, 50)
		f.addPostedReceipt(t, "gr-1", po.ID, 5, 80, 0)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		assert.Equal(t, int64(0), f.onOrderAt(t, 5, dock.ID))
	})

	t.Run("prefers the dock named after the convention", func(t *testing.T) {
		f := newRebuilderFixture(t)
		other := f.addLocation(t, "DOCK-B", masterdata.LocationTypeDock)
		named := f.addLocation(t, masterdata.InboundDockName, masterdata.LocationTypeDock)

		f.addPO(t, "PO-1", procurement.POStatusApproved, 5, 10)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		assert.Equal(t, int64(10), f.onOrderAt(t, 5, named.ID))
		assert.Equal(t, int64(0), f.onOrderAt(t, 5, other.ID))
	})

	t.Run("falls back to the lowest-id dock", func(t *testing.T) {
		f := newRebuilderFixture(t)
		first := f.addLocation(t, "DOCK-A", masterdata.LocationTypeDock)
		f.addLocation(t, "DOCK-B", masterdata.LocationTypeDock)

		f.addPO(t, "PO-1", procurement.POStatusApproved, 5, 10)

		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, []int64{5}))

		assert.Equal(t, int64(10), f.onOrderAt(t, 5, first.ID))
	})

	t.Run("site without a dock is a configuration error", func(t *testing.T) {
		f := newRebuilderFixture(t)
		f.addLocation(t, "MAIN-WH", masterdata.LocationTypeWarehouse)

		f.addPO(t, "PO-1", procurement.POStatusApproved, 5, 10)

		err := f.rebuilder.Rebuild(ctx, f.siteID, []int64{5})
		assert.ErrorIs(t, err, shared.ErrConfiguration)
	})

	t.Run("empty product set is a no-op", func(t *testing.T) {
		f := newRebuilderFixture(t)
		require.NoError(t, f.rebuilder.Rebuild(ctx, f.siteID, nil))
	})
}
