package inventory

import (
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeReceipt    MovementType = "RECEIPT"
	MovementTypeIssue      MovementType = "ISSUE"
	MovementTypeTransfer   MovementType = "TRANSFER"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeScrap      MovementType = "SCRAP"
	MovementTypeReserve    MovementType = "RESERVE"
	MovementTypeUnreserve  MovementType = "UNRESERVE"
)

// IsValid returns true if the movement type is a known value
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeReceipt, MovementTypeIssue, MovementTypeTransfer,
		MovementTypeAdjustment, MovementTypeScrap, MovementTypeReserve,
		MovementTypeUnreserve:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// MaxIdempotencyKeyLen bounds caller-supplied idempotency keys
const MaxIdempotencyKeyLen = 64

// StockMovement is the append-only audit spine of the inventory.
// Exactly one row exists per successful mutation; the unique idempotency
// key is the authority that makes every mutation safe to retry.
type StockMovement struct {
	ID             int64        `gorm:"primaryKey;autoIncrement"`
	ProductID      int64        `gorm:"not null;index"`
	FromLocationID *int64       `gorm:""`
	ToLocationID   *int64       `gorm:""`
	MovementType   MovementType `gorm:"type:varchar(32);not null"`
	Quantity       int64        `gorm:"not null"`
	Reason         string       `gorm:"type:varchar(255)"`
	HappenedAt     time.Time    `gorm:"not null;index:ix_stock_movements_product_time,priority:2"`
	CreatedBy      int64        `gorm:"not null"`
	IdempotencyKey string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt      time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// ValidateIdempotencyKey rejects missing, blank or oversized keys
func ValidateIdempotencyKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.ErrMissingIdempotency
	}
	if len(key) > MaxIdempotencyKeyLen {
		return shared.NewDomainError("INVALID_INPUT", "Idempotency key exceeds 64 characters")
	}
	return nil
}

// NewStockMovement creates a movement record ready to be appended
func NewStockMovement(
	productID int64,
	fromLocationID, toLocationID *int64,
	movementType MovementType,
	quantity int64,
	reason string,
	happenedAt time.Time,
	createdBy int64,
	idempotencyKey string,
) (*StockMovement, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if err := ValidateIdempotencyKey(idempotencyKey); err != nil {
		return nil, err
	}
	return &StockMovement{
		ProductID:      productID,
		FromLocationID: fromLocationID,
		ToLocationID:   toLocationID,
		MovementType:   movementType,
		Quantity:       quantity,
		Reason:         reason,
		HappenedAt:     happenedAt,
		CreatedBy:      createdBy,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now(),
	}, nil
}
