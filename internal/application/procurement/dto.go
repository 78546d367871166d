package procurement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/procurement"
)

// POLineInput is one ordered line of a purchase order being created
type POLineInput struct {
	ProductID  int64
	QtyOrdered int64
	UnitCost   decimal.Decimal
}

// CreatePurchaseOrderRequest creates a draft purchase order with its lines
type CreatePurchaseOrderRequest struct {
	PONumber    string
	SupplierID  int64
	SiteID      int64
	ExpectedETA *time.Time
	ShipmentID  *int64
	Lines       []POLineInput
}

// PurchaseOrderLineResponse is a read-model view of one PO line
type PurchaseOrderLineResponse struct {
	ProductID  int64           `json:"product_id"`
	QtyOrdered int64           `json:"qty_ordered"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse is a read-model view of a purchase order
type PurchaseOrderResponse struct {
	ID          int64                       `json:"id"`
	PONumber    string                      `json:"po_number"`
	SupplierID  int64                       `json:"supplier_id"`
	SiteID      int64                       `json:"site_id"`
	Status      procurement.POStatus        `json:"status"`
	ExpectedETA *time.Time                  `json:"expected_eta,omitempty"`
	ShipmentID  *int64                      `json:"shipment_id,omitempty"`
	ApprovedAt  *time.Time                  `json:"approved_at,omitempty"`
	ApprovedBy  *int64                      `json:"approved_by,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	Lines       []PurchaseOrderLineResponse `json:"lines"`
}

// ToPurchaseOrderResponse converts a purchase order to a response
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(po.Lines))
	for _, ln := range po.Lines {
		lines = append(lines, PurchaseOrderLineResponse{
			ProductID:  ln.ProductID,
			QtyOrdered: ln.QtyOrdered,
			UnitCost:   ln.UnitCost,
		})
	}
	return &PurchaseOrderResponse{
		ID:          po.ID,
		PONumber:    po.PONumber,
		SupplierID:  po.SupplierID,
		SiteID:      po.SiteID,
		Status:      po.Status,
		ExpectedETA: po.ExpectedETA,
		ShipmentID:  po.ShipmentID,
		ApprovedAt:  po.ApprovedAt,
		ApprovedBy:  po.ApprovedBy,
		CreatedAt:   po.CreatedAt,
		Lines:       lines,
	}
}

// ReceiptLineInput is one received line of a goods receipt
type ReceiptLineInput struct {
	ProductID      int64
	QtyReceived    int64
	QtyDamaged     int64
	LotCode        *string
	ExpirationDate *time.Time
}

// ReceiveGoodsRequest posts a goods receipt against a purchase order.
// IdempotencyKey is the optional client-provided key; when empty the key is
// derived from the payload.
type ReceiveGoodsRequest struct {
	POID           int64
	ToLocationID   int64
	ReceivedAt     time.Time
	ActorID        int64
	IdempotencyKey string
	ContainerID    *int64
	Lines          []ReceiptLineInput
}

// GoodsReceiptLineResponse is a read-model view of one receipt line
type GoodsReceiptLineResponse struct {
	ProductID      int64      `json:"product_id"`
	QtyReceived    int64      `json:"qty_received"`
	QtyDamaged     int64      `json:"qty_damaged"`
	LotCode        *string    `json:"lot_code,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// GoodsReceiptResponse is the result of posting a receipt. Replayed is true
// when the idempotency key had already been recorded and the stored receipt
// is returned instead of receiving again.
type GoodsReceiptResponse struct {
	ID         int64                      `json:"id"`
	POID       int64                      `json:"po_id"`
	SiteID     int64                      `json:"site_id"`
	Status     procurement.ReceiptStatus  `json:"status"`
	ReceivedAt *time.Time                 `json:"received_at,omitempty"`
	ReceivedBy *int64                     `json:"received_by,omitempty"`
	Replayed   bool                       `json:"replayed"`
	Lines      []GoodsReceiptLineResponse `json:"lines"`
}

// ToGoodsReceiptResponse converts a goods receipt to a response
func ToGoodsReceiptResponse(gr *procurement.GoodsReceipt, replayed bool) *GoodsReceiptResponse {
	lines := make([]GoodsReceiptLineResponse, 0, len(gr.Lines))
	for _, ln := range gr.Lines {
		lines = append(lines, GoodsReceiptLineResponse{
			ProductID:      ln.ProductID,
			QtyReceived:    ln.QtyReceived,
			QtyDamaged:     ln.QtyDamaged,
			LotCode:        ln.LotCode,
			ExpirationDate: ln.ExpirationDate,
		})
	}
	return &GoodsReceiptResponse{
		ID:         gr.ID,
		POID:       gr.POID,
		SiteID:     gr.SiteID,
		Status:     gr.Status,
		ReceivedAt: gr.ReceivedAt,
		ReceivedBy: gr.ReceivedBy,
		Replayed:   replayed,
		Lines:      lines,
	}
}
