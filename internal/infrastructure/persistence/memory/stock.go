// Package memory provides in-memory repository implementations backing unit
// tests and local development. Behaviour mirrors the gorm repositories,
// including the error contracts for duplicates and missing rows.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

type stockKey struct {
	ProductID  int64
	LocationID int64
}

// StockLevelRepository is an in-memory inventory.StockLevelRepository
type StockLevelRepository struct {
	mu     sync.Mutex
	levels map[stockKey]inventory.StockLevel

	// locationSites lets List honour the site filter; populated by tests
	// through the LocationRepository when both share a fixture.
	locationSites map[int64]int64
}

// NewStockLevelRepository creates an empty StockLevelRepository
func NewStockLevelRepository() *StockLevelRepository {
	return &StockLevelRepository{
		levels:        make(map[stockKey]inventory.StockLevel),
		locationSites: make(map[int64]int64),
	}
}

// SetLocationSite records which site a location belongs to, for filtering
func (r *StockLevelRepository) SetLocationSite(locationID, siteID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locationSites[locationID] = siteID
}

func (r *StockLevelRepository) FindOrCreateForUpdate(_ context.Context, productID, locationID int64) (*inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := stockKey{productID, locationID}
	if level, ok := r.levels[k]; ok {
		copied := level
		return &copied, nil
	}
	level := inventory.NewStockLevel(productID, locationID)
	r.levels[k] = *level
	copied := *level
	return &copied, nil
}

func (r *StockLevelRepository) Save(_ context.Context, level *inventory.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[stockKey{level.ProductID, level.LocationID}] = *level
	return nil
}

func (r *StockLevelRepository) List(_ context.Context, filter inventory.StockFilter) ([]inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockLevel, 0, len(r.levels))
	for _, level := range r.levels {
		if filter.ProductID != nil && level.ProductID != *filter.ProductID {
			continue
		}
		if filter.LocationID != nil && level.LocationID != *filter.LocationID {
			continue
		}
		if filter.SiteID != nil && r.locationSites[level.LocationID] != *filter.SiteID {
			continue
		}
		out = append(out, level)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

var _ inventory.StockLevelRepository = (*StockLevelRepository)(nil)

// StockMovementRepository is an in-memory inventory.StockMovementRepository
type StockMovementRepository struct {
	mu        sync.Mutex
	nextID    int64
	byKey     map[string]*inventory.StockMovement
	movements []*inventory.StockMovement
}

// NewStockMovementRepository creates an empty StockMovementRepository
func NewStockMovementRepository() *StockMovementRepository {
	return &StockMovementRepository{
		nextID: 1,
		byKey:  make(map[string]*inventory.StockMovement),
	}
}

func (r *StockMovementRepository) FindByIdempotencyKey(_ context.Context, key string) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.byKey[key]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *StockMovementRepository) FindByProduct(_ context.Context, productID int64, limit int) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, *r.movements[i])
		}
	}
	return out, nil
}

func (r *StockMovementRepository) Append(_ context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[movement.IdempotencyKey]; ok {
		return shared.ErrIdempotencyConflict
	}
	movement.ID = r.nextID
	r.nextID++
	stored := *movement
	r.byKey[movement.IdempotencyKey] = &stored
	r.movements = append(r.movements, &stored)
	return nil
}

// Count returns the number of stored movements
func (r *StockMovementRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

var _ inventory.StockMovementRepository = (*StockMovementRepository)(nil)
