package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/shared"
)

// SiteRepository is an in-memory masterdata.SiteRepository
type SiteRepository struct {
	mu     sync.Mutex
	nextID int64
	sites  map[int64]masterdata.Site
}

// NewSiteRepository creates an empty SiteRepository
func NewSiteRepository() *SiteRepository {
	return &SiteRepository{nextID: 1, sites: make(map[int64]masterdata.Site)}
}

func (r *SiteRepository) FindByID(_ context.Context, id int64) (*masterdata.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if site, ok := r.sites[id]; ok {
		return &site, nil
	}
	return nil, shared.ErrNotFound
}

func (r *SiteRepository) FindAll(_ context.Context) ([]masterdata.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]masterdata.Site, 0, len(r.sites))
	for _, site := range r.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SiteRepository) Create(_ context.Context, site *masterdata.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sites {
		if existing.Name == site.Name {
			return shared.ErrAlreadyExists
		}
	}
	site.ID = r.nextID
	r.nextID++
	r.sites[site.ID] = *site
	return nil
}

var _ masterdata.SiteRepository = (*SiteRepository)(nil)

// LocationRepository is an in-memory masterdata.LocationRepository
type LocationRepository struct {
	mu        sync.Mutex
	nextID    int64
	locations map[int64]masterdata.Location
}

// NewLocationRepository creates an empty LocationRepository
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{nextID: 1, locations: make(map[int64]masterdata.Location)}
}

func (r *LocationRepository) FindByID(_ context.Context, id int64) (*masterdata.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locations[id]; ok {
		return &loc, nil
	}
	return nil, shared.ErrNotFound
}

func (r *LocationRepository) FindBySite(_ context.Context, siteID int64) ([]masterdata.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]masterdata.Location, 0)
	for _, loc := range r.locations {
		if loc.SiteID == siteID {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LocationRepository) FindAll(_ context.Context) ([]masterdata.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]masterdata.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LocationRepository) Create(_ context.Context, location *masterdata.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.locations {
		if existing.SiteID == location.SiteID && existing.Name == location.Name {
			return shared.ErrAlreadyExists
		}
	}
	location.ID = r.nextID
	r.nextID++
	r.locations[location.ID] = *location
	return nil
}

func (r *LocationRepository) FindInboundDock(_ context.Context, siteID int64) (*masterdata.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lowest *masterdata.Location
	for id := range r.locations {
		loc := r.locations[id]
		if loc.SiteID != siteID || loc.Type != masterdata.LocationTypeDock {
			continue
		}
		if loc.Name == masterdata.InboundDockName {
			return &loc, nil
		}
		if lowest == nil || loc.ID < lowest.ID {
			copied := loc
			lowest = &copied
		}
	}
	if lowest != nil {
		return lowest, nil
	}
	return nil, shared.ErrConfiguration
}

var _ masterdata.LocationRepository = (*LocationRepository)(nil)

// ProductRepository is an in-memory masterdata.ProductRepository
type ProductRepository struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]masterdata.Product
}

// NewProductRepository creates an empty ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{nextID: 1, products: make(map[int64]masterdata.Product)}
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*masterdata.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *ProductRepository) FindBySKU(_ context.Context, sku string) (*masterdata.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *ProductRepository) FindAll(_ context.Context, _ shared.Filter) ([]masterdata.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]masterdata.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) Create(_ context.Context, product *masterdata.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return shared.ErrAlreadyExists
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

var _ masterdata.ProductRepository = (*ProductRepository)(nil)

// SupplierRepository is an in-memory masterdata.SupplierRepository
type SupplierRepository struct {
	mu        sync.Mutex
	nextID    int64
	suppliers map[int64]masterdata.Supplier
}

// NewSupplierRepository creates an empty SupplierRepository
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{nextID: 1, suppliers: make(map[int64]masterdata.Supplier)}
}

func (r *SupplierRepository) FindByID(_ context.Context, id int64) (*masterdata.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.suppliers[id]; ok {
		return &s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *SupplierRepository) FindByName(_ context.Context, name string) (*masterdata.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suppliers {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *SupplierRepository) FindAll(_ context.Context, _ shared.Filter) ([]masterdata.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]masterdata.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SupplierRepository) Create(_ context.Context, supplier *masterdata.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.suppliers {
		if existing.Name == supplier.Name {
			return shared.ErrAlreadyExists
		}
	}
	supplier.ID = r.nextID
	r.nextID++
	r.suppliers[supplier.ID] = *supplier
	return nil
}

var _ masterdata.SupplierRepository = (*SupplierRepository)(nil)

// ActorRepository is an in-memory masterdata.ActorRepository
type ActorRepository struct {
	mu     sync.Mutex
	nextID int64
	actors map[int64]masterdata.Actor
}

// NewActorRepository creates an empty ActorRepository
func NewActorRepository() *ActorRepository {
	return &ActorRepository{nextID: 1, actors: make(map[int64]masterdata.Actor)}
}

func (r *ActorRepository) FindByID(_ context.Context, id int64) (*masterdata.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actors[id]; ok {
		return &a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *ActorRepository) Create(_ context.Context, actor *masterdata.Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	actor.ID = r.nextID
	r.nextID++
	r.actors[actor.ID] = *actor
	return nil
}

var _ masterdata.ActorRepository = (*ActorRepository)(nil)
