package masterdata

import (
	"context"

	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/shared"
)

// MasterdataService handles sites, locations, products and suppliers.
// These are low-churn reference rows; creation is validated, deletion does
// not exist.
type MasterdataService struct {
	sites     masterdata.SiteRepository
	locations masterdata.LocationRepository
	products  masterdata.ProductRepository
	suppliers masterdata.SupplierRepository
	actors    masterdata.ActorRepository
}

// NewMasterdataService creates a MasterdataService
func NewMasterdataService(
	sites masterdata.SiteRepository,
	locations masterdata.LocationRepository,
	products masterdata.ProductRepository,
	suppliers masterdata.SupplierRepository,
	actors masterdata.ActorRepository,
) *MasterdataService {
	return &MasterdataService{
		sites:     sites,
		locations: locations,
		products:  products,
		suppliers: suppliers,
		actors:    actors,
	}
}

// CreateSite creates a site
func (s *MasterdataService) CreateSite(ctx context.Context, name, timezone string) (*SiteResponse, error) {
	site, err := masterdata.NewSite(name, timezone)
	if err != nil {
		return nil, err
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return ToSiteResponse(site), nil
}

// ListSites returns all sites
func (s *MasterdataService) ListSites(ctx context.Context) ([]SiteResponse, error) {
	sites, err := s.sites.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SiteResponse, 0, len(sites))
	for i := range sites {
		out = append(out, *ToSiteResponse(&sites[i]))
	}
	return out, nil
}

// CreateLocation creates a location within a site
func (s *MasterdataService) CreateLocation(ctx context.Context, siteID int64, name string, locType masterdata.LocationType) (*LocationResponse, error) {
	if _, err := s.sites.FindByID(ctx, siteID); err != nil {
		return nil, err
	}
	loc, err := masterdata.NewLocation(siteID, name, locType)
	if err != nil {
		return nil, err
	}
	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// ListLocations returns a site's locations, or all locations when siteID is zero
func (s *MasterdataService) ListLocations(ctx context.Context, siteID int64) ([]LocationResponse, error) {
	var (
		locations []masterdata.Location
		err       error
	)
	if siteID > 0 {
		locations, err = s.locations.FindBySite(ctx, siteID)
	} else {
		locations, err = s.locations.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, *ToLocationResponse(&locations[i]))
	}
	return out, nil
}

// GetLocation returns one location
func (s *MasterdataService) GetLocation(ctx context.Context, id int64) (*LocationResponse, error) {
	loc, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// CreateProduct creates a product
func (s *MasterdataService) CreateProduct(ctx context.Context, sku, name, uom string, barcode *string) (*ProductResponse, error) {
	product, err := masterdata.NewProduct(sku, name, uom, barcode)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetProduct returns one product
func (s *MasterdataService) GetProduct(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ListProducts returns products matching the filter
func (s *MasterdataService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *ToProductResponse(&products[i]))
	}
	return out, nil
}

// CreateSupplier creates a supplier
func (s *MasterdataService) CreateSupplier(ctx context.Context, name string, country *string, leadTimeDays, reliabilityScore int) (*SupplierResponse, error) {
	supplier, err := masterdata.NewSupplier(name, country, leadTimeDays, reliabilityScore)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetSupplier returns one supplier
func (s *MasterdataService) GetSupplier(ctx context.Context, id int64) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// CreateActor registers a warehouse operator at a site
func (s *MasterdataService) CreateActor(ctx context.Context, siteID int64, name string, role masterdata.Role) (*ActorResponse, error) {
	if _, err := s.sites.FindByID(ctx, siteID); err != nil {
		return nil, err
	}
	actor, err := masterdata.NewActor(siteID, name, role)
	if err != nil {
		return nil, err
	}
	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, err
	}
	return ToActorResponse(actor), nil
}

// GetActor returns one actor
func (s *MasterdataService) GetActor(ctx context.Context, id int64) (*ActorResponse, error) {
	actor, err := s.actors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToActorResponse(actor), nil
}

// ListSuppliers returns suppliers matching the filter
func (s *MasterdataService) ListSuppliers(ctx context.Context, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *ToSupplierResponse(&suppliers[i]))
	}
	return out, nil
}
