package inventory

import (
	"time"

	"github.com/wms/backend/internal/domain/inventory"
)

// TransferRequest moves on-hand quantity between two locations
type TransferRequest struct {
	ProductID      int64
	FromLocationID int64
	ToLocationID   int64
	Quantity       int64
	Reason         string
	ActorID        int64
	IdempotencyKey string
	HappenedAt     *time.Time
}

// ReservationRequest earmarks, releases or issues quantity at one location.
// The same shape serves reserve, unreserve and issue.
type ReservationRequest struct {
	ProductID      int64
	LocationID     int64
	Quantity       int64
	Reason         string
	ActorID        int64
	IdempotencyKey string
	HappenedAt     *time.Time
}

// MovementResponse is the result of a mutation. Replayed is true when the
// idempotency key had already been recorded and the stored movement is
// returned instead of applying the mutation again.
type MovementResponse struct {
	MovementID     int64                  `json:"movement_id"`
	ProductID      int64                  `json:"product_id"`
	FromLocationID *int64                 `json:"from_location_id,omitempty"`
	ToLocationID   *int64                 `json:"to_location_id,omitempty"`
	MovementType   inventory.MovementType `json:"movement_type"`
	Quantity       int64                  `json:"quantity"`
	Reason         string                 `json:"reason,omitempty"`
	HappenedAt     time.Time              `json:"happened_at"`
	CreatedBy      int64                  `json:"created_by"`
	IdempotencyKey string                 `json:"idempotency_key"`
	Replayed       bool                   `json:"replayed"`
}

// ToMovementResponse converts a movement record to a response
func ToMovementResponse(m *inventory.StockMovement, replayed bool) *MovementResponse {
	return &MovementResponse{
		MovementID:     m.ID,
		ProductID:      m.ProductID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		MovementType:   m.MovementType,
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		HappenedAt:     m.HappenedAt,
		CreatedBy:      m.CreatedBy,
		IdempotencyKey: m.IdempotencyKey,
		Replayed:       replayed,
	}
}

// StockLevelResponse is a read-model view of one stock row
type StockLevelResponse struct {
	ProductID   int64     `json:"product_id"`
	LocationID  int64     `json:"location_id"`
	QtyOnHand   int64     `json:"qty_on_hand"`
	QtyReserved int64     `json:"qty_reserved"`
	QtyOnOrder  int64     `json:"qty_on_order"`
	Available   int64     `json:"available"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToStockLevelResponse converts a stock row to a response
func ToStockLevelResponse(s *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:   s.ProductID,
		LocationID:  s.LocationID,
		QtyOnHand:   s.QtyOnHand,
		QtyReserved: s.QtyReserved,
		QtyOnOrder:  s.QtyOnOrder,
		Available:   s.Available(),
		UpdatedAt:   s.UpdatedAt,
	}
}
