package shipping

import (
	"time"

	"github.com/wms/backend/internal/domain/shipping"
)

// CreateShipmentRequest books a new shipment
type CreateShipmentRequest struct {
	Mode        shipping.ShipmentMode
	Carrier     *string
	TrackingRef *string
	Origin      *string
	Destination *string
	ETAInitial  *time.Time
	ETACurrent  *time.Time
	Containers  []ContainerInput
}

// ContainerInput is one container travelling on the shipment
type ContainerInput struct {
	ContainerNumber string
	SealNumber      *string
	Type            *string
}

// RecordEventRequest appends a tracking event to a shipment
type RecordEventRequest struct {
	ShipmentID  int64
	EventCode   string
	Location    *string
	EventTime   time.Time
	Source      string
	Description *string
}

// ShipmentEventResponse is a read-model view of one tracking event
type ShipmentEventResponse struct {
	ID          int64     `json:"id"`
	EventCode   string    `json:"event_code"`
	Location    *string   `json:"location,omitempty"`
	EventTime   time.Time `json:"event_time"`
	Source      string    `json:"source"`
	Description *string   `json:"description,omitempty"`
}

// ShipmentResponse is a read-model view of a shipment
type ShipmentResponse struct {
	ID          int64                   `json:"id"`
	Mode        shipping.ShipmentMode   `json:"mode"`
	Carrier     *string                 `json:"carrier,omitempty"`
	TrackingRef *string                 `json:"tracking_ref,omitempty"`
	Origin      *string                 `json:"origin,omitempty"`
	Destination *string                 `json:"destination,omitempty"`
	Status      shipping.ShipmentStatus `json:"status"`
	ETAInitial  *time.Time              `json:"eta_initial,omitempty"`
	ETACurrent  *time.Time              `json:"eta_current,omitempty"`
	LastEventAt *time.Time              `json:"last_event_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ToShipmentResponse converts a shipment to a response
func ToShipmentResponse(s *shipping.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:          s.ID,
		Mode:        s.Mode,
		Carrier:     s.Carrier,
		TrackingRef: s.TrackingRef,
		Origin:      s.Origin,
		Destination: s.Destination,
		Status:      s.Status,
		ETAInitial:  s.ETAInitial,
		ETACurrent:  s.ETACurrent,
		LastEventAt: s.LastEventAt,
		CreatedAt:   s.CreatedAt,
	}
}

// ToShipmentEventResponse converts an event to a response
func ToShipmentEventResponse(e *shipping.ShipmentEvent) ShipmentEventResponse {
	return ShipmentEventResponse{
		ID:          e.ID,
		EventCode:   e.EventCode,
		Location:    e.Location,
		EventTime:   e.EventTime,
		Source:      e.Source,
		Description: e.Description,
	}
}
