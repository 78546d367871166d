package inventory

import (
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// StockLevel is the authoritative quantity tuple for a product at a location.
// The composite identifier is ProductID + LocationID. Rows are created on
// first touch and never deleted.
//
// Writes to this table belong exclusively to the mutation engine; QtyOnOrder
// in particular is a derived projection owned by the on-order rebuilder.
type StockLevel struct {
	ProductID   int64     `gorm:"primaryKey;autoIncrement:false"`
	LocationID  int64     `gorm:"primaryKey;autoIncrement:false"`
	QtyOnHand   int64     `gorm:"not null;default:0"`
	QtyReserved int64     `gorm:"not null;default:0"`
	QtyOnOrder  int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero-quantity stock row for a product-location pair
func NewStockLevel(productID, locationID int64) *StockLevel {
	return &StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		UpdatedAt:  time.Now(),
	}
}

// Available returns the quantity eligible to be reserved or transferred out.
// On-order stock is forward-looking and never part of availability.
func (s *StockLevel) Available() int64 {
	return s.QtyOnHand - s.QtyReserved
}

// RemoveOnHand takes quantity out of on-hand stock, checking availability
// so reserved stock is never transferred away underneath a picker.
func (s *StockLevel) RemoveOnHand(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Available() < qty {
		return shared.NewPreconditionFailed("insufficient available stock (available=%d)", s.Available())
	}
	s.QtyOnHand -= qty
	s.UpdatedAt = time.Now()
	return nil
}

// AddOnHand puts received or transferred-in quantity into on-hand stock
func (s *StockLevel) AddOnHand(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	s.QtyOnHand += qty
	s.UpdatedAt = time.Now()
	return nil
}

// Reserve earmarks available quantity for picking. Reserving only what is
// available keeps qty_reserved <= qty_on_hand without further checks.
func (s *StockLevel) Reserve(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Available() < qty {
		return shared.NewPreconditionFailed("insufficient available stock (available=%d)", s.Available())
	}
	s.QtyReserved += qty
	s.UpdatedAt = time.Now()
	return nil
}

// Unreserve releases previously reserved quantity back to available
func (s *StockLevel) Unreserve(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.QtyReserved < qty {
		return shared.NewPreconditionFailed("insufficient reserved stock (reserved=%d)", s.QtyReserved)
	}
	s.QtyReserved -= qty
	s.UpdatedAt = time.Now()
	return nil
}

// Issue consumes reserved stock out of the warehouse (pick-from-reservation).
// Both reserved and on-hand decrease by the issued quantity.
func (s *StockLevel) Issue(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.QtyReserved < qty {
		return shared.NewPreconditionFailed("not enough reserved to issue (reserved=%d)", s.QtyReserved)
	}
	if s.QtyOnHand < qty {
		return shared.NewPreconditionFailed("not enough on hand to issue (on_hand=%d)", s.QtyOnHand)
	}
	s.QtyReserved -= qty
	s.QtyOnHand -= qty
	s.UpdatedAt = time.Now()
	return nil
}

// SetOnOrder overwrites the derived on-order projection. Only the rebuilder
// may call this; it never touches on-hand or reserved.
func (s *StockLevel) SetOnOrder(qty int64) {
	if qty < 0 {
		qty = 0
	}
	s.QtyOnOrder = qty
	s.UpdatedAt = time.Now()
}
