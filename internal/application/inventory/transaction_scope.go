package inventory

import (
	"context"

	"github.com/wms/backend/internal/domain/audit"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to the repositories a
// mutation touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
//
// Aggregate boundary notes:
//   - StockLevels: the authoritative quantity rows, always read through
//     FindOrCreateForUpdate so the row lock is held until commit.
//   - Movements: the append-only audit spine. Its unique idempotency key is
//     the retry authority for every mutation.
//   - PurchaseOrders and GoodsReceipts participate because goods receipt is
//     a compound mutation: stock, receipt, PO status and the on-order
//     projection all change in one transaction.
type TransactionalRepositories interface {
	StockLevels() inventory.StockLevelRepository
	Movements() inventory.StockMovementRepository
	Locations() masterdata.LocationRepository
	PurchaseOrders() procurement.PurchaseOrderRepository
	GoodsReceipts() procurement.GoodsReceiptRepository
	Shipments() shipping.ShipmentRepository
	AuditLogs() audit.LogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests against in-memory or sqlite repositories.
type NoOpTransactionScope struct {
	stockLevels    inventory.StockLevelRepository
	movements      inventory.StockMovementRepository
	locations      masterdata.LocationRepository
	purchaseOrders procurement.PurchaseOrderRepository
	goodsReceipts  procurement.GoodsReceiptRepository
	shipments      shipping.ShipmentRepository
	auditLogs      audit.LogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	stockLevels inventory.StockLevelRepository,
	movements inventory.StockMovementRepository,
	locations masterdata.LocationRepository,
	purchaseOrders procurement.PurchaseOrderRepository,
	goodsReceipts procurement.GoodsReceiptRepository,
	shipments shipping.ShipmentRepository,
	auditLogs audit.LogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockLevels:    stockLevels,
		movements:      movements,
		locations:      locations,
		purchaseOrders: purchaseOrders,
		goodsReceipts:  goodsReceipts,
		shipments:      shipments,
		auditLogs:      auditLogs,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockLevels() inventory.StockLevelRepository { return s.stockLevels }

func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository { return s.movements }

func (s *NoOpTransactionScope) Locations() masterdata.LocationRepository { return s.locations }

func (s *NoOpTransactionScope) PurchaseOrders() procurement.PurchaseOrderRepository {
	return s.purchaseOrders
}

func (s *NoOpTransactionScope) GoodsReceipts() procurement.GoodsReceiptRepository {
	return s.goodsReceipts
}

func (s *NoOpTransactionScope) Shipments() shipping.ShipmentRepository { return s.shipments }

func (s *NoOpTransactionScope) AuditLogs() audit.LogRepository { return s.auditLogs }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
