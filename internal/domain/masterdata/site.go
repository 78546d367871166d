package masterdata

import "github.com/wms/backend/internal/domain/shared"

// Site represents a physical site operated by the company.
// Sites are created once during provisioning and never deleted.
type Site struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Timezone string `gorm:"type:varchar(64);not null;default:'Pacific/Tahiti'"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Site) TableName() string {
	return "sites"
}

// NewSite creates a new site
func NewSite(name, timezone string) (*Site, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SITE_NAME", "Site name cannot be empty")
	}
	if timezone == "" {
		timezone = "Pacific/Tahiti"
	}
	return &Site{Name: name, Timezone: timezone, Active: true}, nil
}
