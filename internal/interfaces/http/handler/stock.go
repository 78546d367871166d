package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appinv "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/inventory"
)

// StockHandler serves stock queries and the stock mutation endpoints
type StockHandler struct {
	BaseHandler
	movements *appinv.MovementService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(movements *appinv.MovementService) *StockHandler {
	return &StockHandler{movements: movements}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock", h.List)
	movements := rg.Group("/stock-movements")
	{
		movements.POST("/transfer", h.Transfer)
		movements.POST("/reserve", h.Reserve)
		movements.POST("/unreserve", h.Unreserve)
		movements.POST("/issue", h.Issue)
	}
	rg.GET("/movements", h.ListMovements)
}

type transferRequest struct {
	ProductID      int64      `json:"product_id" binding:"required,gt=0"`
	FromLocationID int64      `json:"from_location_id" binding:"required,gt=0"`
	ToLocationID   int64      `json:"to_location_id" binding:"required,gt=0"`
	Quantity       int64      `json:"quantity" binding:"required,gt=0"`
	Reason         string     `json:"reason"`
	IdempotencyKey string     `json:"idempotency_key"`
	HappenedAt     *time.Time `json:"happened_at"`
}

type reservationRequest struct {
	ProductID      int64      `json:"product_id" binding:"required,gt=0"`
	LocationID     int64      `json:"location_id" binding:"required,gt=0"`
	Quantity       int64      `json:"quantity" binding:"required,gt=0"`
	Reason         string     `json:"reason"`
	IdempotencyKey string     `json:"idempotency_key"`
	HappenedAt     *time.Time `json:"happened_at"`
}

// List returns stock levels, optionally filtered by site, location or product
func (h *StockHandler) List(c *gin.Context) {
	var filter inventory.StockFilter
	if v := c.Query("site_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.BadRequest(c, "site_id must be an integer")
			return
		}
		filter.SiteID = &id
	}
	if v := c.Query("location_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.BadRequest(c, "location_id must be an integer")
			return
		}
		filter.LocationID = &id
	}
	if v := c.Query("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.BadRequest(c, "product_id must be an integer")
			return
		}
		filter.ProductID = &id
	}

	levels, err := h.movements.GetStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}

// Transfer moves on-hand quantity between two locations
func (h *StockHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid transfer payload: "+err.Error())
		return
	}

	resp, err := h.movements.Transfer(c.Request.Context(), appinv.TransferRequest{
		ProductID:      req.ProductID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		ActorID:        getActorID(c),
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
		HappenedAt:     req.HappenedAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reserve earmarks available quantity at one location
func (h *StockHandler) Reserve(c *gin.Context) {
	h.applyAtLocation(c, h.movements.Reserve)
}

// Unreserve releases previously reserved quantity
func (h *StockHandler) Unreserve(c *gin.Context) {
	h.applyAtLocation(c, h.movements.Unreserve)
}

// Issue consumes reserved stock out of the warehouse
func (h *StockHandler) Issue(c *gin.Context) {
	h.applyAtLocation(c, h.movements.Issue)
}

// ListMovements returns the most recent movements for a product
func (h *StockHandler) ListMovements(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		h.BadRequest(c, "product_id is required and must be a positive integer")
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			h.BadRequest(c, "limit must be a non-negative integer")
			return
		}
	}

	movements, err := h.movements.ListMovements(c.Request.Context(), productID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

func (h *StockHandler) applyAtLocation(
	c *gin.Context,
	apply func(ctx context.Context, req appinv.ReservationRequest) (*appinv.MovementResponse, error),
) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	resp, err := apply(c.Request.Context(), appinv.ReservationRequest{
		ProductID:      req.ProductID,
		LocationID:     req.LocationID,
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		ActorID:        getActorID(c),
		IdempotencyKey: idempotencyKey(c, req.IdempotencyKey),
		HappenedAt:     req.HappenedAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// idempotencyKey reads the Idempotency-Key header, falling back to the
// body field. The movement service rejects an empty key.
func idempotencyKey(c *gin.Context, fromBody string) string {
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		return key
	}
	return fromBody
}
