package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appship "github.com/wms/backend/internal/application/shipping"
	"github.com/wms/backend/internal/domain/shipping"
)

// ShipmentHandler serves inbound shipment tracking
type ShipmentHandler struct {
	BaseHandler
	shipments *appship.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipments *appship.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

// RegisterRoutes registers shipment routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/shipments")
	{
		shipments.POST("", h.Create)
		shipments.GET("", h.List)
		shipments.GET("/:id", h.Get)
		shipments.GET("/:id/events", h.ListEvents)
		shipments.POST("/:id/events", h.RecordEvent)
	}
}

type containerRequest struct {
	ContainerNumber string  `json:"container_number" binding:"required"`
	SealNumber      *string `json:"seal_number"`
	Type            *string `json:"type"`
}

type createShipmentRequest struct {
	Mode        string             `json:"mode" binding:"required"`
	Carrier     *string            `json:"carrier"`
	TrackingRef *string            `json:"tracking_ref"`
	Origin      *string            `json:"origin"`
	Destination *string            `json:"destination"`
	ETAInitial  *time.Time         `json:"eta_initial"`
	ETACurrent  *time.Time         `json:"eta_current"`
	Containers  []containerRequest `json:"containers" binding:"dive"`
}

type recordEventRequest struct {
	EventCode   string    `json:"event_code" binding:"required"`
	Location    *string   `json:"location"`
	EventTime   time.Time `json:"event_time" binding:"required"`
	Source      string    `json:"source"`
	Description *string   `json:"description"`
}

// Create registers an inbound shipment with its containers
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid shipment payload: "+err.Error())
		return
	}

	containers := make([]appship.ContainerInput, 0, len(req.Containers))
	for _, cn := range req.Containers {
		containers = append(containers, appship.ContainerInput{
			ContainerNumber: cn.ContainerNumber,
			SealNumber:      cn.SealNumber,
			Type:            cn.Type,
		})
	}

	resp, err := h.shipments.Create(c.Request.Context(), appship.CreateShipmentRequest{
		Mode:        shipping.ShipmentMode(req.Mode),
		Carrier:     req.Carrier,
		TrackingRef: req.TrackingRef,
		Origin:      req.Origin,
		Destination: req.Destination,
		ETAInitial:  req.ETAInitial,
		ETACurrent:  req.ETACurrent,
		Containers:  containers,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns shipments matching the query filter
func (h *ShipmentHandler) List(c *gin.Context) {
	filter := listFilter(c)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if mode := c.Query("mode"); mode != "" {
		filter.Filters["mode"] = mode
	}

	resp, err := h.shipments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one shipment with its containers
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid shipment id")
		return
	}

	resp, err := h.shipments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListEvents returns a shipment's tracking events in event-time order
func (h *ShipmentHandler) ListEvents(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid shipment id")
		return
	}

	events, err := h.shipments.ListEvents(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// RecordEvent appends a tracking event and returns the updated shipment
func (h *ShipmentHandler) RecordEvent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "invalid shipment id")
		return
	}

	var req recordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid event payload: "+err.Error())
		return
	}

	resp, err := h.shipments.RecordEvent(c.Request.Context(), appship.RecordEventRequest{
		ShipmentID:  id,
		EventCode:   req.EventCode,
		Location:    req.Location,
		EventTime:   req.EventTime,
		Source:      req.Source,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
