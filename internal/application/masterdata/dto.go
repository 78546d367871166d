package masterdata

import (
	"github.com/wms/backend/internal/domain/masterdata"
)

// SiteResponse represents a site in API responses
type SiteResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

// ToSiteResponse converts a site to a response
func ToSiteResponse(s *masterdata.Site) *SiteResponse {
	return &SiteResponse{ID: s.ID, Name: s.Name, Timezone: s.Timezone, Active: s.Active}
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID     int64                   `json:"id"`
	SiteID int64                   `json:"site_id"`
	Name   string                  `json:"name"`
	Type   masterdata.LocationType `json:"type"`
}

// ToLocationResponse converts a location to a response
func ToLocationResponse(l *masterdata.Location) *LocationResponse {
	return &LocationResponse{ID: l.ID, SiteID: l.SiteID, Name: l.Name, Type: l.Type}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID      int64   `json:"id"`
	SKU     string  `json:"sku"`
	Name    string  `json:"name"`
	UOM     string  `json:"uom"`
	Barcode *string `json:"barcode,omitempty"`
	Active  bool    `json:"active"`
}

// ToProductResponse converts a product to a response
func ToProductResponse(p *masterdata.Product) *ProductResponse {
	return &ProductResponse{
		ID:      p.ID,
		SKU:     p.SKU,
		Name:    p.Name,
		UOM:     p.UOM,
		Barcode: p.Barcode,
		Active:  p.Active,
	}
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Country          *string `json:"country,omitempty"`
	LeadTimeDays     int     `json:"lead_time_days"`
	ReliabilityScore int     `json:"reliability_score"`
}

// ActorResponse represents a warehouse operator in API responses
type ActorResponse struct {
	ID     int64           `json:"id"`
	SiteID int64           `json:"site_id"`
	Name   string          `json:"name"`
	Role   masterdata.Role `json:"role"`
	Active bool            `json:"active"`
}

// ToActorResponse converts an actor to a response
func ToActorResponse(a *masterdata.Actor) *ActorResponse {
	return &ActorResponse{ID: a.ID, SiteID: a.SiteID, Name: a.Name, Role: a.Role, Active: a.Active}
}

// ToSupplierResponse converts a supplier to a response
func ToSupplierResponse(s *masterdata.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		Country:          s.Country,
		LeadTimeDays:     s.LeadTimeDays,
		ReliabilityScore: s.ReliabilityScore,
	}
}
