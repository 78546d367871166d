package masterdata

import "github.com/wms/backend/internal/domain/shared"

// LocationType classifies a physical location within a site
type LocationType string

const (
	LocationTypeWarehouse  LocationType = "warehouse"
	LocationTypeZone       LocationType = "zone"
	LocationTypeDock       LocationType = "dock"
	LocationTypeCustoms    LocationType = "customs"
	LocationTypeQuarantine LocationType = "quarantine"
	LocationTypeStore      LocationType = "store"
)

// IsValid returns true if the location type is a known value
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeZone, LocationTypeDock,
		LocationTypeCustoms, LocationTypeQuarantine, LocationTypeStore:
		return true
	}
	return false
}

// String returns the string representation of LocationType
func (t LocationType) String() string {
	return string(t)
}

// InboundDockName is the conventional name of the inbound dock at each site.
// The on-order projection is materialised against this location when it exists.
const InboundDockName = "TAH-DOCK"

// Location represents a physical location within a site.
// Names are unique per site.
type Location struct {
	ID     int64        `gorm:"primaryKey;autoIncrement"`
	SiteID int64        `gorm:"not null;uniqueIndex:uq_location_site_name,priority:1"`
	Name   string       `gorm:"type:varchar(200);not null;uniqueIndex:uq_location_site_name,priority:2"`
	Type   LocationType `gorm:"type:varchar(32);not null"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location within a site
func NewLocation(siteID int64, name string, locType LocationType) (*Location, error) {
	if siteID <= 0 {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_NAME", "Location name cannot be empty")
	}
	if !locType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION_TYPE", "Unknown location type")
	}
	return &Location{SiteID: siteID, Name: name, Type: locType}, nil
}
