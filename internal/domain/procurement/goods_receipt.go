package procurement

import (
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// ReceiptStatus represents the status of a goods receipt
type ReceiptStatus string

const (
	ReceiptStatusDraft     ReceiptStatus = "DRAFT"
	ReceiptStatusPosted    ReceiptStatus = "POSTED"
	ReceiptStatusCancelled ReceiptStatus = "CANCELLED"
)

// IsValid returns true if the status is a known value
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptStatusDraft, ReceiptStatusPosted, ReceiptStatusCancelled:
		return true
	}
	return false
}

// GoodsReceipt records the arrival of goods against a purchase order.
// Receipts are created POSTED so the on-order projection never observes a
// half-applied receipt. POSTED is terminal-positive, CANCELLED
// terminal-negative.
type GoodsReceipt struct {
	ID             int64         `gorm:"primaryKey;autoIncrement"`
	POID           int64         `gorm:"column:po_id;not null;index"`
	SiteID         int64         `gorm:"not null"`
	Status         ReceiptStatus `gorm:"type:varchar(32);not null;default:'DRAFT'"`
	ReceivedAt     *time.Time    `gorm:""`
	ReceivedBy     *int64        `gorm:""`
	ContainerID    *int64        `gorm:""`
	IdempotencyKey *string       `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt      time.Time     `gorm:"not null"`

	Lines []GoodsReceiptLine `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// NewPostedGoodsReceipt creates a receipt that is posted on creation
func NewPostedGoodsReceipt(poID, siteID int64, receivedAt time.Time, receivedBy int64, idempotencyKey string, containerID *int64) (*GoodsReceipt, error) {
	if poID <= 0 {
		return nil, shared.NewDomainError("INVALID_PO", "Purchase order ID is required")
	}
	if siteID <= 0 {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID is required")
	}
	if idempotencyKey == "" {
		return nil, shared.ErrMissingIdempotency
	}
	return &GoodsReceipt{
		POID:           poID,
		SiteID:         siteID,
		Status:         ReceiptStatusPosted,
		ReceivedAt:     &receivedAt,
		ReceivedBy:     &receivedBy,
		ContainerID:    containerID,
		IdempotencyKey: &idempotencyKey,
		CreatedAt:      time.Now(),
	}, nil
}

// GoodsReceiptLine is a line of a goods receipt.
// The composite key is (receipt_id, product_id).
type GoodsReceiptLine struct {
	ReceiptID      int64      `gorm:"primaryKey;autoIncrement:false"`
	ProductID      int64      `gorm:"primaryKey;autoIncrement:false"`
	QtyReceived    int64      `gorm:"not null"`
	QtyDamaged     int64      `gorm:"not null;default:0"`
	LotCode        *string    `gorm:"type:varchar(64)"`
	ExpirationDate *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}

// NewGoodsReceiptLine creates a goods receipt line.
// Damaged quantity is part of the received quantity, so it can never exceed it.
func NewGoodsReceiptLine(receiptID, productID, qtyReceived, qtyDamaged int64, lotCode *string, expirationDate *time.Time) (*GoodsReceiptLine, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if qtyReceived < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
	}
	if qtyDamaged < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Damaged quantity cannot be negative")
	}
	if qtyDamaged > qtyReceived {
		return nil, shared.NewPreconditionFailed("damaged quantity %d exceeds received quantity %d", qtyDamaged, qtyReceived)
	}
	return &GoodsReceiptLine{
		ReceiptID:      receiptID,
		ProductID:      productID,
		QtyReceived:    qtyReceived,
		QtyDamaged:     qtyDamaged,
		LotCode:        lotCode,
		ExpirationDate: expirationDate,
	}, nil
}
