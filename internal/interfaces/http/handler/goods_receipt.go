package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appproc "github.com/wms/backend/internal/application/procurement"
)

// GoodsReceiptHandler serves goods receipt posting and lookup
type GoodsReceiptHandler struct {
	BaseHandler
	receiving *appproc.ReceivingService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receiving *appproc.ReceivingService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receiving: receiving}
}

// RegisterRoutes registers goods receipt routes
func (h *GoodsReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/goods-receipts")
	{
		receipts.POST("", h.Receive)
		receipts.GET("/:id", h.Get)
	}
}

type receiptLineRequest struct {
	ProductID      int64      `json:"product_id" binding:"required,gt=0"`
	QtyReceived    int64      `json:"qty_received" binding:"gte=0"`
	QtyDamaged     int64      `json:"qty_damaged" binding:"gte=0"`
	LotCode        *string    `json:"lot_code"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type receiveGoodsRequest struct {
	POID         int64                `json:"po_id" binding:"required,gt=0"`
	ToLocationID int64                `json:"to_location_id" binding:"required,gt=0"`
	ReceivedAt   time.Time            `json:"received_at" binding:"required"`
	ContainerID  *int64               `json:"container_id"`
	Lines        []receiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Receive posts a goods receipt against a purchase order. The optional
// Idempotency-Key header makes the call safe to retry; without it the key
// is derived from the payload, so an exact retry still replays.
func (h *GoodsReceiptHandler) Receive(c *gin.Context) {
	var req receiveGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid receipt payload: "+err.Error())
		return
	}

	lines := make([]appproc.ReceiptLineInput, 0, len(req.Lines))
	for _, ln := range req.Lines {
		lines = append(lines, appproc.ReceiptLineInput{
			ProductID:      ln.ProductID,
			QtyReceived:    ln.QtyReceived,
			QtyDamaged:     ln.QtyDamaged,
			LotCode:        ln.LotCode,
			ExpirationDate: ln.ExpirationDate,
		})
	}

	resp, err := h.receiving.ReceiveGoods(c.Request.Context(), appproc.ReceiveGoodsRequest{
		POID:           req.POID,
		ToLocationID:   req.ToLocationID,
		ReceivedAt:     req.ReceivedAt,
		ActorID:        getActorID(c),
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
		ContainerID:    req.ContainerID,
		Lines:          lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// A replayed receipt is a 200, a fresh posting a 201
	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// Get returns one goods receipt with its lines
func (h *GoodsReceiptHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid receipt id")
		return
	}

	resp, err := h.receiving.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
