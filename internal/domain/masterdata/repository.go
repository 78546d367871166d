package masterdata

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// SiteRepository provides access to sites
type SiteRepository interface {
	FindByID(ctx context.Context, id int64) (*Site, error)
	FindAll(ctx context.Context) ([]Site, error)
	Create(ctx context.Context, site *Site) error
}

// LocationRepository provides access to locations
type LocationRepository interface {
	FindByID(ctx context.Context, id int64) (*Location, error)
	FindBySite(ctx context.Context, siteID int64) ([]Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	Create(ctx context.Context, location *Location) error

	// FindInboundDock resolves the inbound dock for a site: the dock named
	// TAH-DOCK when present, otherwise the lowest-id dock. Returns
	// shared.ErrConfiguration when the site has no dock at all.
	FindInboundDock(ctx context.Context, siteID int64) (*Location, error)
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Create(ctx context.Context, product *Product) error
}

// SupplierRepository provides access to suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Create(ctx context.Context, supplier *Supplier) error
}

// ActorRepository provides access to actors
type ActorRepository interface {
	FindByID(ctx context.Context, id int64) (*Actor, error)
	Create(ctx context.Context, actor *Actor) error
}
