package masterdata

import (
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// Role classifies what an actor is allowed to do
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleField   Role = "field"
)

// IsValid returns true if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleField:
		return true
	}
	return false
}

// Actor is an already-identified warehouse operator.
// Authentication happens upstream; the service only records who acted.
type Actor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	SiteID    int64     `gorm:"not null"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Role      Role      `gorm:"type:varchar(32);not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Actor) TableName() string {
	return "actors"
}

// NewActor creates a new actor attached to a site
func NewActor(siteID int64, name string, role Role) (*Actor, error) {
	if siteID <= 0 {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR_NAME", "Actor name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return &Actor{SiteID: siteID, Name: name, Role: role, Active: true, CreatedAt: time.Now()}, nil
}
