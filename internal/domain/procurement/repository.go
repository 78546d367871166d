package procurement

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderRepository provides access to purchase orders and their lines
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id int64) (*PurchaseOrder, error)
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Create persists the order together with its lines. Surfaces
	// shared.ErrAlreadyExists when the PO number is taken.
	Create(ctx context.Context, po *PurchaseOrder) error
	Save(ctx context.Context, po *PurchaseOrder) error

	// SumOrderedByProduct sums qty_ordered per product over the site's
	// purchase orders whose status is in the engaged set, restricted to the
	// given products.
	SumOrderedByProduct(ctx context.Context, siteID int64, productIDs []int64) (map[int64]int64, error)
}

// GoodsReceiptRepository provides access to goods receipts and their lines
type GoodsReceiptRepository interface {
	FindByID(ctx context.Context, id int64) (*GoodsReceipt, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*GoodsReceipt, error)

	// Create persists the receipt. Surfaces shared.ErrIdempotencyConflict
	// when the unique idempotency key rejects the row.
	Create(ctx context.Context, receipt *GoodsReceipt) error
	CreateLine(ctx context.Context, line *GoodsReceiptLine) error

	// SumPostedReceivedByProduct sums (qty_received - qty_damaged) per
	// product over the site's POSTED receipts, restricted to the given
	// products. The parent PO's status is deliberately not consulted.
	SumPostedReceivedByProduct(ctx context.Context, siteID int64, productIDs []int64) (map[int64]int64, error)

	// SumReceivedForPO sums received quantity per product over the PO's
	// POSTED receipts, used to decide partial vs closed after a receive.
	SumReceivedForPO(ctx context.Context, poID int64) (map[int64]int64, error)
}
