package procurement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// POStatus represents the status of a purchase order
type POStatus string

const (
	POStatusDraft     POStatus = "DRAFT"
	POStatusApproved  POStatus = "APPROVED"
	POStatusShipped   POStatus = "SHIPPED"
	POStatusPartial   POStatus = "PARTIAL"
	POStatusClosed    POStatus = "CLOSED"
	POStatusCancelled POStatus = "CANCELLED"
)

// IsValid checks if the status is a valid POStatus
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusApproved, POStatusShipped,
		POStatusPartial, POStatusClosed, POStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of POStatus
func (s POStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s POStatus) CanTransitionTo(target POStatus) bool {
	switch s {
	case POStatusDraft:
		return target == POStatusApproved || target == POStatusCancelled
	case POStatusApproved:
		return target == POStatusShipped || target == POStatusPartial ||
			target == POStatusClosed || target == POStatusCancelled
	case POStatusShipped:
		return target == POStatusPartial || target == POStatusClosed || target == POStatusCancelled
	case POStatusPartial:
		return target == POStatusClosed || target == POStatusCancelled
	case POStatusClosed, POStatusCancelled:
		return false // terminal
	}
	return false
}

// IsEngaged returns true if the PO contributes to the on-order projection
func (s POStatus) IsEngaged() bool {
	return s == POStatusApproved || s == POStatusShipped || s == POStatusPartial
}

// EngagedStatuses is the set of statuses that contribute to qty_on_order
var EngagedStatuses = []POStatus{POStatusApproved, POStatusShipped, POStatusPartial}

// PurchaseOrder is the inbound purchase document.
// Its status advances through the lifecycle graph; engaged statuses feed
// the on-order projection.
type PurchaseOrder struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	PONumber    string     `gorm:"column:po_number;type:varchar(64);not null;uniqueIndex"`
	SupplierID  int64      `gorm:"not null"`
	SiteID      int64      `gorm:"not null"`
	Status      POStatus   `gorm:"type:varchar(32);not null;default:'DRAFT'"`
	ExpectedETA *time.Time `gorm:"column:expected_eta;type:date"`
	ShipmentID  *int64     `gorm:""`
	CreatedAt   time.Time  `gorm:"not null"`
	ApprovedAt  *time.Time `gorm:""`
	ApprovedBy  *int64     `gorm:""`

	Lines []PurchaseOrderLine `gorm:"foreignKey:POID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(poNumber string, supplierID, siteID int64, expectedETA *time.Time, shipmentID *int64) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if supplierID <= 0 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if siteID <= 0 {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID is required")
	}
	return &PurchaseOrder{
		PONumber:    poNumber,
		SupplierID:  supplierID,
		SiteID:      siteID,
		Status:      POStatusDraft,
		ExpectedETA: expectedETA,
		ShipmentID:  shipmentID,
		CreatedAt:   time.Now(),
	}, nil
}

// TransitionTo advances the lifecycle, rejecting edges the graph forbids
func (po *PurchaseOrder) TransitionTo(target POStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_PO_STATUS", "Unknown purchase order status")
	}
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Purchase order cannot transition from "+po.Status.String()+" to "+target.String())
	}
	po.Status = target
	return nil
}

// Approve moves a draft PO into the engaged set, recording who approved it
func (po *PurchaseOrder) Approve(actorID int64, at time.Time) error {
	if err := po.TransitionTo(POStatusApproved); err != nil {
		return err
	}
	po.ApprovedAt = &at
	po.ApprovedBy = &actorID
	return nil
}

// HasProduct returns true if the product appears on one of the PO's lines
func (po *PurchaseOrder) HasProduct(productID int64) bool {
	for _, line := range po.Lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the distinct product ids over the PO's lines
func (po *PurchaseOrder) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(po.Lines))
	ids := make([]int64, 0, len(po.Lines))
	for _, line := range po.Lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// PurchaseOrderLine is an immutable line of a purchase order.
// The composite key is (po_id, product_id).
type PurchaseOrderLine struct {
	POID       int64           `gorm:"column:po_id;primaryKey;autoIncrement:false"`
	ProductID  int64           `gorm:"primaryKey;autoIncrement:false"`
	QtyOrdered int64           `gorm:"not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// NewPurchaseOrderLine creates a purchase order line
func NewPurchaseOrderLine(poID, productID, qtyOrdered int64, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if qtyOrdered <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	return &PurchaseOrderLine{
		POID:       poID,
		ProductID:  productID,
		QtyOrdered: qtyOrdered,
		UnitCost:   unitCost,
	}, nil
}
