package shipping

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// ShipmentRepository provides access to shipments, events and containers
type ShipmentRepository interface {
	FindByID(ctx context.Context, id int64) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	Create(ctx context.Context, shipment *Shipment) error
	Save(ctx context.Context, shipment *Shipment) error

	FindEvents(ctx context.Context, shipmentID int64) ([]ShipmentEvent, error)
	AppendEvent(ctx context.Context, event *ShipmentEvent) error

	CreateContainer(ctx context.Context, container *Container) error
}
