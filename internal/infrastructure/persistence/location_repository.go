package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/shared"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id int64) (*masterdata.Location, error) {
	var location masterdata.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindBySite returns all locations belonging to a site
func (r *GormLocationRepository) FindBySite(ctx context.Context, siteID int64) ([]masterdata.Location, error) {
	var locations []masterdata.Location
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("id").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindAll returns all locations
func (r *GormLocationRepository) FindAll(ctx context.Context) ([]masterdata.Location, error) {
	var locations []masterdata.Location
	if err := r.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create persists a new location
func (r *GormLocationRepository) Create(ctx context.Context, location *masterdata.Location) error {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindInboundDock resolves the site's receiving dock. The dock named
// TAH-DOCK wins when present; otherwise the lowest-id dock serves as a
// deterministic fallback. A site with no dock at all is a configuration
// fault, not a caller mistake.
func (r *GormLocationRepository) FindInboundDock(ctx context.Context, siteID int64) (*masterdata.Location, error) {
	var dock masterdata.Location
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND type = ? AND name = ?", siteID, masterdata.LocationTypeDock, masterdata.InboundDockName).
		First(&dock).Error
	if err == nil {
		return &dock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("site_id = ? AND type = ?", siteID, masterdata.LocationTypeDock).
		Order("id").
		First(&dock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrConfiguration
		}
		return nil, err
	}
	return &dock, nil
}

var _ masterdata.LocationRepository = (*GormLocationRepository)(nil)
