package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shipping"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment with its containers
func (r *GormShipmentRepository) FindByID(ctx context.Context, id int64) (*shipping.Shipment, error) {
	var shipment shipping.Shipment
	if err := r.db.WithContext(ctx).Preload("Containers").First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll returns shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shipping.Shipment, error) {
	query := r.db.WithContext(ctx).Model(&shipping.Shipment{}).Preload("Containers")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if mode, ok := filter.Filters["mode"]; ok {
		query = query.Where("mode = ?", mode)
	}

	var shipments []shipping.Shipment
	query = applyFilter(query, filter, map[string]bool{"id": true, "created_at": true, "eta_current": true})
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Create persists a new shipment
func (r *GormShipmentRepository) Create(ctx context.Context, shipment *shipping.Shipment) error {
	return r.db.WithContext(ctx).Omit("Events", "Containers").Create(shipment).Error
}

// Save persists header changes without touching events or containers
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	return r.db.WithContext(ctx).Omit("Events", "Containers").Save(shipment).Error
}

// FindEvents returns a shipment's events in event-time order
func (r *GormShipmentRepository) FindEvents(ctx context.Context, shipmentID int64) ([]shipping.ShipmentEvent, error) {
	var events []shipping.ShipmentEvent
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("event_time, id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// AppendEvent records a tracking event
func (r *GormShipmentRepository) AppendEvent(ctx context.Context, event *shipping.ShipmentEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CreateContainer persists a container attached to a shipment
func (r *GormShipmentRepository) CreateContainer(ctx context.Context, container *shipping.Container) error {
	if err := r.db.WithContext(ctx).Create(container).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)
