package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appmd "github.com/wms/backend/internal/application/masterdata"
	"github.com/wms/backend/internal/domain/masterdata"
)

// MasterdataHandler serves sites, locations, products and suppliers
type MasterdataHandler struct {
	BaseHandler
	md *appmd.MasterdataService
}

// NewMasterdataHandler creates a new MasterdataHandler
func NewMasterdataHandler(md *appmd.MasterdataService) *MasterdataHandler {
	return &MasterdataHandler{md: md}
}

// RegisterRoutes registers masterdata routes
func (h *MasterdataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sites := rg.Group("/sites")
	{
		sites.POST("", h.CreateSite)
		sites.GET("", h.ListSites)
	}
	locations := rg.Group("/locations")
	{
		locations.POST("", h.CreateLocation)
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
	}
	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("", h.ListSuppliers)
		suppliers.GET("/:id", h.GetSupplier)
	}
	actors := rg.Group("/actors")
	{
		actors.POST("", h.CreateActor)
		actors.GET("/:id", h.GetActor)
	}
}

type createSiteRequest struct {
	Name     string `json:"name" binding:"required"`
	Timezone string `json:"timezone"`
}

type createLocationRequest struct {
	SiteID int64  `json:"site_id" binding:"required,gt=0"`
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

type createProductRequest struct {
	SKU     string  `json:"sku" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	UOM     string  `json:"uom"`
	Barcode *string `json:"barcode"`
}

type createActorRequest struct {
	SiteID int64  `json:"site_id" binding:"required,gt=0"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type createSupplierRequest struct {
	Name             string  `json:"name" binding:"required"`
	Country          *string `json:"country"`
	LeadTimeDays     int     `json:"lead_time_days" binding:"gte=0"`
	ReliabilityScore int     `json:"reliability_score" binding:"gte=0,lte=100"`
}

// CreateSite creates a warehouse site
func (h *MasterdataHandler) CreateSite(c *gin.Context) {
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid site payload: "+err.Error())
		return
	}

	site, err := h.md.CreateSite(c.Request.Context(), req.Name, req.Timezone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, site)
}

// ListSites returns all sites
func (h *MasterdataHandler) ListSites(c *gin.Context) {
	sites, err := h.md.ListSites(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sites)
}

// CreateLocation creates a storage location within a site
func (h *MasterdataHandler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid location payload: "+err.Error())
		return
	}

	loc, err := h.md.CreateLocation(c.Request.Context(), req.SiteID, req.Name, masterdata.LocationType(req.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, loc)
}

// ListLocations returns the locations of a site
func (h *MasterdataHandler) ListLocations(c *gin.Context) {
	siteID, err := strconv.ParseInt(c.Query("site_id"), 10, 64)
	if err != nil || siteID <= 0 {
		h.BadRequest(c, "site_id is required and must be a positive integer")
		return
	}

	locations, err := h.md.ListLocations(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}

// GetLocation returns one location
func (h *MasterdataHandler) GetLocation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid location id")
		return
	}

	loc, err := h.md.GetLocation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}

// CreateProduct creates a product
func (h *MasterdataHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}

	product, err := h.md.CreateProduct(c.Request.Context(), req.SKU, req.Name, req.UOM, req.Barcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts returns products matching the query filter
func (h *MasterdataHandler) ListProducts(c *gin.Context) {
	products, err := h.md.ListProducts(c.Request.Context(), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns one product
func (h *MasterdataHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.md.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CreateSupplier creates a supplier
func (h *MasterdataHandler) CreateSupplier(c *gin.Context) {
	var req createSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid supplier payload: "+err.Error())
		return
	}

	supplier, err := h.md.CreateSupplier(c.Request.Context(), req.Name, req.Country, req.LeadTimeDays, req.ReliabilityScore)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// ListSuppliers returns suppliers matching the query filter
func (h *MasterdataHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.md.ListSuppliers(c.Request.Context(), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// GetSupplier returns one supplier
func (h *MasterdataHandler) GetSupplier(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	supplier, err := h.md.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// CreateActor registers a warehouse operator
func (h *MasterdataHandler) CreateActor(c *gin.Context) {
	var req createActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid actor payload: "+err.Error())
		return
	}

	actor, err := h.md.CreateActor(c.Request.Context(), req.SiteID, req.Name, masterdata.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, actor)
}

// GetActor returns one actor
func (h *MasterdataHandler) GetActor(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid actor id")
		return
	}

	actor, err := h.md.GetActor(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, actor)
}
