package shipping

import (
	"context"

	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shipping"
)

// ShipmentService handles shipment booking and tracking. Recording an event
// appends the event row and advances the shipment status in one transaction.
type ShipmentService struct {
	scope     inventoryapp.TransactionScope
	shipments shipping.ShipmentRepository
}

// NewShipmentService creates a ShipmentService
func NewShipmentService(scope inventoryapp.TransactionScope, shipments shipping.ShipmentRepository) *ShipmentService {
	return &ShipmentService{scope: scope, shipments: shipments}
}

// Create books a shipment, optionally with its containers
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := shipping.NewShipment(req.Mode, req.Carrier, req.TrackingRef, req.Origin, req.Destination, req.ETAInitial, req.ETACurrent)
	if err != nil {
		return nil, err
	}

	var out *ShipmentResponse
	err = s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		if err := repos.Shipments().Create(ctx, shipment); err != nil {
			return err
		}
		for _, c := range req.Containers {
			container, err := shipping.NewContainer(shipment.ID, c.ContainerNumber, c.SealNumber, c.Type)
			if err != nil {
				return err
			}
			if err := repos.Shipments().CreateContainer(ctx, container); err != nil {
				return err
			}
		}
		out = ToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one shipment
func (s *ShipmentService) GetByID(ctx context.Context, id int64) (*ShipmentResponse, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// List returns shipments matching the filter
func (s *ShipmentService) List(ctx context.Context, filter shared.Filter) ([]*ShipmentResponse, error) {
	shipments, err := s.shipments.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		out = append(out, ToShipmentResponse(&shipments[i]))
	}
	return out, nil
}

// ListEvents returns a shipment's tracking history
func (s *ShipmentService) ListEvents(ctx context.Context, shipmentID int64) ([]ShipmentEventResponse, error) {
	if _, err := s.shipments.FindByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	events, err := s.shipments.FindEvents(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	out := make([]ShipmentEventResponse, 0, len(events))
	for i := range events {
		out = append(out, ToShipmentEventResponse(&events[i]))
	}
	return out, nil
}

// RecordEvent appends a tracking event and advances the shipment status
// when the event code maps to one. Unknown codes are kept in the history
// without moving the status.
func (s *ShipmentService) RecordEvent(ctx context.Context, req RecordEventRequest) (*ShipmentResponse, error) {
	if req.EventTime.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "event_time is required")
	}

	var out *ShipmentResponse
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		shipment, err := repos.Shipments().FindByID(ctx, req.ShipmentID)
		if err != nil {
			return err
		}

		event, err := shipping.NewShipmentEvent(req.ShipmentID, req.EventCode, req.Location, req.EventTime, req.Source, req.Description)
		if err != nil {
			return err
		}
		if err := repos.Shipments().AppendEvent(ctx, event); err != nil {
			return err
		}

		shipment.ApplyEvent(req.EventCode, req.EventTime)
		if err := repos.Shipments().Save(ctx, shipment); err != nil {
			return err
		}

		out = ToShipmentResponse(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
