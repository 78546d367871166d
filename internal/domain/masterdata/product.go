package masterdata

import "github.com/wms/backend/internal/domain/shared"

// Product represents a stocked article identified by SKU.
type Product struct {
	ID      int64   `gorm:"primaryKey;autoIncrement"`
	SKU     string  `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name    string  `gorm:"type:varchar(255);not null"`
	UOM     string  `gorm:"column:uom;type:varchar(32);not null;default:'unit'"`
	Barcode *string `gorm:"type:varchar(64);uniqueIndex"`
	Active  bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, uom string, barcode *string) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if uom == "" {
		uom = "unit"
	}
	if barcode != nil && *barcode == "" {
		barcode = nil
	}
	return &Product{SKU: sku, Name: name, UOM: uom, Barcode: barcode, Active: true}, nil
}
