package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appproc "github.com/wms/backend/internal/application/procurement"
)

// PurchaseOrderHandler serves purchase order creation and lifecycle actions
type PurchaseOrderHandler struct {
	BaseHandler
	pos *appproc.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(pos *appproc.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{pos: pos}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pos := rg.Group("/purchase-orders")
	{
		pos.POST("", h.Create)
		pos.GET("", h.List)
		pos.GET("/:id", h.Get)
		pos.POST("/:id/approve", h.Approve)
		pos.POST("/:id/ship", h.Ship)
		pos.POST("/:id/close", h.Close)
		pos.POST("/:id/cancel", h.Cancel)
	}
}

type poLineRequest struct {
	ProductID  int64           `json:"product_id" binding:"required,gt=0"`
	QtyOrdered int64           `json:"qty_ordered" binding:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

type createPORequest struct {
	PONumber    string          `json:"po_number" binding:"required"`
	SupplierID  int64           `json:"supplier_id" binding:"required,gt=0"`
	SiteID      int64           `json:"site_id" binding:"required,gt=0"`
	ExpectedETA *time.Time      `json:"expected_eta"`
	ShipmentID  *int64          `json:"shipment_id"`
	Lines       []poLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Create creates a draft purchase order with its lines
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req createPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid purchase order payload: "+err.Error())
		return
	}

	lines := make([]appproc.POLineInput, 0, len(req.Lines))
	for _, ln := range req.Lines {
		lines = append(lines, appproc.POLineInput{
			ProductID:  ln.ProductID,
			QtyOrdered: ln.QtyOrdered,
			UnitCost:   ln.UnitCost,
		})
	}

	resp, err := h.pos.Create(c.Request.Context(), appproc.CreatePurchaseOrderRequest{
		PONumber:    req.PONumber,
		SupplierID:  req.SupplierID,
		SiteID:      req.SiteID,
		ExpectedETA: req.ExpectedETA,
		ShipmentID:  req.ShipmentID,
		Lines:       lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns purchase orders matching the query filter
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter := listFilter(c)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if siteID := c.Query("site_id"); siteID != "" {
		filter.Filters["site_id"] = siteID
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.Filters["supplier_id"] = supplierID
	}

	resp, err := h.pos.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid purchase order id")
		return
	}

	resp, err := h.pos.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve moves a draft PO into the engaged set
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.pos.Approve)
}

// Ship marks an approved PO as shipped
func (h *PurchaseOrderHandler) Ship(c *gin.Context) {
	h.transition(c, h.pos.Ship)
}

// Close closes a PO, releasing any remaining on-order quantity
func (h *PurchaseOrderHandler) Close(c *gin.Context) {
	h.transition(c, h.pos.Close)
}

// Cancel cancels a PO, releasing any remaining on-order quantity
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.pos.Cancel)
}

func (h *PurchaseOrderHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id, actorID int64) (*appproc.PurchaseOrderResponse, error),
) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid purchase order id")
		return
	}

	resp, err := apply(c.Request.Context(), id, getActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
