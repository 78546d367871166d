package masterdata

import "github.com/wms/backend/internal/domain/shared"

// Supplier represents an upstream vendor purchase orders are placed against.
type Supplier struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	Name             string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Country          *string `gorm:"type:varchar(2)"`
	LeadTimeDays     int     `gorm:"not null;default:14"`
	ReliabilityScore int     `gorm:"not null;default:70"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier.
// Reliability score is clamped to the persisted check constraint bounds
// by validation rather than silently adjusted.
func NewSupplier(name string, country *string, leadTimeDays, reliabilityScore int) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if leadTimeDays < 0 {
		return nil, shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	if reliabilityScore < 0 || reliabilityScore > 100 {
		return nil, shared.NewDomainError("INVALID_RELIABILITY", "Reliability score must be between 0 and 100")
	}
	return &Supplier{
		Name:             name,
		Country:          country,
		LeadTimeDays:     leadTimeDays,
		ReliabilityScore: reliabilityScore,
	}, nil
}
