package procurement

import (
	"context"
	"fmt"
	"time"

	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/audit"
	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order lifecycle operations.
// Transitions that move a PO into or out of the engaged set rebuild the
// on-order projection for the PO's products in the same transaction, so
// the projection and the lifecycle can never be observed out of step.
type PurchaseOrderService struct {
	scope          inventoryapp.TransactionScope
	purchaseOrders procurement.PurchaseOrderRepository
	suppliers      masterdata.SupplierRepository
	rebuilder      *inventoryapp.OnOrderRebuilder
}

// NewPurchaseOrderService creates a PurchaseOrderService
func NewPurchaseOrderService(
	scope inventoryapp.TransactionScope,
	purchaseOrders procurement.PurchaseOrderRepository,
	suppliers masterdata.SupplierRepository,
	rebuilder *inventoryapp.OnOrderRebuilder,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:          scope,
		purchaseOrders: purchaseOrders,
		suppliers:      suppliers,
		rebuilder:      rebuilder,
	}
}

// Create creates a draft purchase order with its lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A purchase order needs at least one line")
	}
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	po, err := procurement.NewPurchaseOrder(req.PONumber, req.SupplierID, req.SiteID, req.ExpectedETA, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(req.Lines))
	for _, ln := range req.Lines {
		if _, dup := seen[ln.ProductID]; dup {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Product %d appears on more than one line", ln.ProductID))
		}
		seen[ln.ProductID] = struct{}{}
		line, err := procurement.NewPurchaseOrderLine(0, ln.ProductID, ln.QtyOrdered, ln.UnitCost)
		if err != nil {
			return nil, err
		}
		po.Lines = append(po.Lines, *line)
	}

	if err := s.purchaseOrders.Create(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// GetByID returns one purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, id int64) (*PurchaseOrderResponse, error) {
	po, err := s.purchaseOrders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// List returns purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) ([]*PurchaseOrderResponse, error) {
	pos, err := s.purchaseOrders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*PurchaseOrderResponse, 0, len(pos))
	for i := range pos {
		out = append(out, ToPurchaseOrderResponse(&pos[i]))
	}
	return out, nil
}

// Approve moves a draft PO into the engaged set
func (s *PurchaseOrderService) Approve(ctx context.Context, id, actorID int64) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, actorID, "PO_APPROVED", func(po *procurement.PurchaseOrder) error {
		return po.Approve(actorID, time.Now())
	})
}

// Ship marks an engaged PO as shipped
func (s *PurchaseOrderService) Ship(ctx context.Context, id, actorID int64) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, actorID, "PO_SHIPPED", func(po *procurement.PurchaseOrder) error {
		return po.TransitionTo(procurement.POStatusShipped)
	})
}

// Close terminates a PO, releasing its remaining on-order quantity
func (s *PurchaseOrderService) Close(ctx context.Context, id, actorID int64) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, actorID, "PO_CLOSED", func(po *procurement.PurchaseOrder) error {
		return po.TransitionTo(procurement.POStatusClosed)
	})
}

// Cancel terminates a PO, releasing its remaining on-order quantity
func (s *PurchaseOrderService) Cancel(ctx context.Context, id, actorID int64) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, id, actorID, "PO_CANCELLED", func(po *procurement.PurchaseOrder) error {
		return po.TransitionTo(procurement.POStatusCancelled)
	})
}

func (s *PurchaseOrderService) transition(
	ctx context.Context,
	id, actorID int64,
	action string,
	apply func(po *procurement.PurchaseOrder) error,
) (*PurchaseOrderResponse, error) {
	var out *PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		wasEngaged := po.Status.IsEngaged()

		if err := apply(po); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}

		// Only membership changes in the engaged set move the projection;
		// approved -> shipped stays inside it and needs no rebuild.
		if wasEngaged != po.Status.IsEngaged() {
			if err := s.rebuilder.RebuildWithin(ctx, repos, po.SiteID, po.ProductIDs()); err != nil {
				return err
			}
		}

		entry := audit.NewLog(actorID, action, "purchase_order", fmt.Sprintf("%d", po.ID), nil)
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		out = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
