package shipping

import (
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// ShipmentMode is the transport mode of a shipment
type ShipmentMode string

const (
	ShipmentModeSea ShipmentMode = "SEA"
	ShipmentModeAir ShipmentMode = "AIR"
)

// IsValid returns true if the mode is a known value
func (m ShipmentMode) IsValid() bool {
	return m == ShipmentModeSea || m == ShipmentModeAir
}

// ShipmentStatus represents where a shipment is in its journey
type ShipmentStatus string

const (
	ShipmentStatusBooked         ShipmentStatus = "BOOKED"
	ShipmentStatusDeparted       ShipmentStatus = "DEPARTED"
	ShipmentStatusInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusArrived        ShipmentStatus = "ARRIVED"
	ShipmentStatusCustoms        ShipmentStatus = "CUSTOMS"
	ShipmentStatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentStatusDelivered      ShipmentStatus = "DELIVERED"
)

// statusForEventCode maps tracking event codes to the status they advance to.
// Unknown codes map to "" and leave the status untouched.
func statusForEventCode(code string) ShipmentStatus {
	switch strings.ToUpper(code) {
	case "DEPARTED", "SAILED", "FLIGHT_DEPARTED":
		return ShipmentStatusDeparted
	case "IN_TRANSIT":
		return ShipmentStatusInTransit
	case "ARRIVED", "LANDED":
		return ShipmentStatusArrived
	case "CUSTOMS":
		return ShipmentStatusCustoms
	case "OUT_FOR_DELIVERY":
		return ShipmentStatusOutForDelivery
	case "DELIVERED":
		return ShipmentStatusDelivered
	}
	return ""
}

// Shipment tracks an inbound consignment from carrier booking to delivery
type Shipment struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	Mode        ShipmentMode   `gorm:"type:varchar(16);not null"`
	Carrier     *string        `gorm:"type:varchar(128)"`
	TrackingRef *string        `gorm:"type:varchar(128);index"`
	Origin      *string        `gorm:"type:varchar(128)"`
	Destination *string        `gorm:"type:varchar(128)"`
	Status      ShipmentStatus `gorm:"type:varchar(32);not null;default:'BOOKED'"`
	ETAInitial  *time.Time     `gorm:"column:eta_initial;type:date"`
	ETACurrent  *time.Time     `gorm:"column:eta_current;type:date"`
	LastEventAt *time.Time     `gorm:""`
	CreatedAt   time.Time      `gorm:"not null"`

	Events     []ShipmentEvent `gorm:"foreignKey:ShipmentID;references:ID"`
	Containers []Container     `gorm:"foreignKey:ShipmentID;references:ID"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a booked shipment
func NewShipment(mode ShipmentMode, carrier, trackingRef, origin, destination *string, etaInitial, etaCurrent *time.Time) (*Shipment, error) {
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_SHIPMENT_MODE", "Shipment mode must be SEA or AIR")
	}
	return &Shipment{
		Mode:        mode,
		Carrier:     carrier,
		TrackingRef: trackingRef,
		Origin:      origin,
		Destination: destination,
		Status:      ShipmentStatusBooked,
		ETAInitial:  etaInitial,
		ETACurrent:  etaCurrent,
		CreatedAt:   time.Now(),
	}, nil
}

// ApplyEvent records an event against the shipment: last_event_at always
// advances to the event time, the status only when the code maps to one.
// Returns true when the status changed.
func (s *Shipment) ApplyEvent(eventCode string, eventTime time.Time) bool {
	t := eventTime
	s.LastEventAt = &t
	next := statusForEventCode(eventCode)
	if next == "" || next == s.Status {
		return false
	}
	s.Status = next
	return true
}

// ShipmentEvent is an append-only tracking event
type ShipmentEvent struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID  int64     `gorm:"not null;index:ix_shipment_events_ship_time,priority:1"`
	EventCode   string    `gorm:"type:varchar(32);not null"`
	Location    *string   `gorm:"type:varchar(128)"`
	EventTime   time.Time `gorm:"not null;index:ix_shipment_events_ship_time,priority:2"`
	Source      string    `gorm:"type:varchar(32);not null;default:'MANUAL'"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentEvent) TableName() string {
	return "shipment_events"
}

// NewShipmentEvent creates a tracking event
func NewShipmentEvent(shipmentID int64, eventCode string, location *string, eventTime time.Time, source string, description *string) (*ShipmentEvent, error) {
	if shipmentID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIPMENT", "Shipment ID is required")
	}
	if eventCode == "" {
		return nil, shared.NewDomainError("INVALID_EVENT_CODE", "Event code cannot be empty")
	}
	if source == "" {
		source = "MANUAL"
	}
	return &ShipmentEvent{
		ShipmentID:  shipmentID,
		EventCode:   eventCode,
		Location:    location,
		EventTime:   eventTime,
		Source:      source,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// Container is a physical container travelling on a shipment
type Container struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	ShipmentID      int64   `gorm:"not null"`
	ContainerNumber string  `gorm:"type:varchar(16);not null;uniqueIndex"`
	SealNumber      *string `gorm:"type:varchar(32)"`
	Type            *string `gorm:"type:varchar(16)"`
	Status          string  `gorm:"type:varchar(32);not null;default:'IN_TRANSIT'"`
}

// TableName returns the table name for GORM
func (Container) TableName() string {
	return "containers"
}

// NewContainer creates a container attached to a shipment
func NewContainer(shipmentID int64, containerNumber string, sealNumber, containerType *string) (*Container, error) {
	if shipmentID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIPMENT", "Shipment ID is required")
	}
	if containerNumber == "" {
		return nil, shared.NewDomainError("INVALID_CONTAINER_NUMBER", "Container number cannot be empty")
	}
	return &Container{
		ShipmentID:      shipmentID,
		ContainerNumber: containerNumber,
		SealNumber:      sealNumber,
		Type:            containerType,
		Status:          "IN_TRANSIT",
	}, nil
}
