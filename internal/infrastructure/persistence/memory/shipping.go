package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shipping"
)

// ShipmentRepository is an in-memory shipping.ShipmentRepository
type ShipmentRepository struct {
	mu         sync.Mutex
	nextID     int64
	shipments  map[int64]shipping.Shipment
	events     []shipping.ShipmentEvent
	containers []shipping.Container
}

// NewShipmentRepository creates an empty ShipmentRepository
func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{nextID: 1, shipments: make(map[int64]shipping.Shipment)}
}

func (r *ShipmentRepository) FindByID(_ context.Context, id int64) (*shipping.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shipments[id]; ok {
		copied := s
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *ShipmentRepository) FindAll(_ context.Context, _ shared.Filter) ([]shipping.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shipping.Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ShipmentRepository) Create(_ context.Context, shipment *shipping.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment.ID = r.nextID
	r.nextID++
	r.shipments[shipment.ID] = *shipment
	return nil
}

func (r *ShipmentRepository) Save(_ context.Context, shipment *shipping.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shipments[shipment.ID]; !ok {
		return shared.ErrNotFound
	}
	r.shipments[shipment.ID] = *shipment
	return nil
}

func (r *ShipmentRepository) FindEvents(_ context.Context, shipmentID int64) ([]shipping.ShipmentEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shipping.ShipmentEvent, 0)
	for _, e := range r.events {
		if e.ShipmentID == shipmentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventTime.Before(out[j].EventTime) })
	return out, nil
}

func (r *ShipmentRepository) AppendEvent(_ context.Context, event *shipping.ShipmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

func (r *ShipmentRepository) CreateContainer(_ context.Context, container *shipping.Container) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.containers {
		if existing.ContainerNumber == container.ContainerNumber {
			return shared.ErrAlreadyExists
		}
	}
	container.ID = int64(len(r.containers) + 1)
	r.containers = append(r.containers, *container)
	return nil
}

var _ shipping.ShipmentRepository = (*ShipmentRepository)(nil)
