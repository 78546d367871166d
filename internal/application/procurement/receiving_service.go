package procurement

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/audit"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// ReceivingService posts goods receipts. A receive is the one compound
// mutation in the system: inside a single transaction it creates the POSTED
// receipt, adds the received quantity to stock at the destination, appends
// one movement per line, advances the PO lifecycle and rebuilds the
// on-order projection. The receipt-level idempotency key makes the whole
// unit replay-safe; a retry that lost the race gets the winner's receipt.
type ReceivingService struct {
	scope          inventoryapp.TransactionScope
	purchaseOrders procurement.PurchaseOrderRepository
	goodsReceipts  procurement.GoodsReceiptRepository
	locations      masterdata.LocationRepository
	rebuilder      *inventoryapp.OnOrderRebuilder
}

// NewReceivingService creates a ReceivingService. The repositories here are
// non-transactional and serve validation and winner re-reads; all writes go
// through the scope.
func NewReceivingService(
	scope inventoryapp.TransactionScope,
	purchaseOrders procurement.PurchaseOrderRepository,
	goodsReceipts procurement.GoodsReceiptRepository,
	locations masterdata.LocationRepository,
	rebuilder *inventoryapp.OnOrderRebuilder,
) *ReceivingService {
	return &ReceivingService{
		scope:          scope,
		purchaseOrders: purchaseOrders,
		goodsReceipts:  goodsReceipts,
		locations:      locations,
		rebuilder:      rebuilder,
	}
}

// ReceiveGoods posts a goods receipt against a purchase order
func (s *ReceivingService) ReceiveGoods(ctx context.Context, req ReceiveGoodsRequest) (*GoodsReceiptResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "goods_receipt", "post",
		attribute.Int64("po_id", req.POID),
		attribute.Int64(telemetry.SpanAttrLocationID, req.ToLocationID))
	defer span.End()

	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A goods receipt needs at least one line")
	}
	if req.ReceivedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "received_at is required")
	}

	po, err := s.purchaseOrders.FindByID(ctx, req.POID)
	if err != nil {
		return nil, err
	}

	var receiptKey string
	if req.IdempotencyKey != "" {
		receiptKey = ReceiptKeyFromHeader(po.SiteID, req.IdempotencyKey)
	} else {
		receiptKey = DeriveReceiptKey(po.SiteID, po.ID, req.ToLocationID, req.ReceivedAt, req.Lines)
	}

	// The key lookup comes before any state gate. A full receive closes the
	// PO, so a retry of that receive arrives against a non-engaged order and
	// must still get the recorded receipt back.
	if existing, err := s.goodsReceipts.FindByIdempotencyKey(ctx, receiptKey); err == nil {
		return ToGoodsReceiptResponse(existing, true), nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if !po.Status.IsEngaged() {
		return nil, shared.NewDomainError("INVALID_STATE",
			"Purchase order in status "+po.Status.String()+" cannot receive goods")
	}

	loc, err := s.locations.FindByID(ctx, req.ToLocationID)
	if err != nil {
		return nil, err
	}
	if loc.SiteID != po.SiteID {
		return nil, shared.NewPreconditionFailed("Destination location %d is not in the purchase order's site", req.ToLocationID)
	}
	for _, ln := range req.Lines {
		if !po.HasProduct(ln.ProductID) {
			return nil, shared.NewPreconditionFailed("Product %d is not on the purchase order", ln.ProductID)
		}
	}

	var out *GoodsReceiptResponse
	err = s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		// Re-check inside the transaction: a concurrent same-key receive
		// may have committed between the fast path and here.
		if existing, err := repos.GoodsReceipts().FindByIdempotencyKey(ctx, receiptKey); err == nil {
			out = ToGoodsReceiptResponse(existing, true)
			return nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		po, err := repos.PurchaseOrders().FindByID(ctx, req.POID)
		if err != nil {
			return err
		}

		gr, err := procurement.NewPostedGoodsReceipt(po.ID, po.SiteID, req.ReceivedAt, req.ActorID, receiptKey, req.ContainerID)
		if err != nil {
			return err
		}
		if err := repos.GoodsReceipts().Create(ctx, gr); err != nil {
			return err
		}

		lines := make([]ReceiptLineInput, len(req.Lines))
		copy(lines, req.Lines)
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

		for _, ln := range lines {
			grLine, err := procurement.NewGoodsReceiptLine(gr.ID, ln.ProductID, ln.QtyReceived, ln.QtyDamaged, ln.LotCode, ln.ExpirationDate)
			if err != nil {
				return err
			}
			if err := repos.GoodsReceipts().CreateLine(ctx, grLine); err != nil {
				return err
			}
			gr.Lines = append(gr.Lines, *grLine)

			if ln.QtyReceived == 0 {
				continue
			}

			level, err := repos.StockLevels().FindOrCreateForUpdate(ctx, ln.ProductID, req.ToLocationID)
			if err != nil {
				return err
			}
			if err := level.AddOnHand(ln.QtyReceived); err != nil {
				return err
			}
			if err := repos.StockLevels().Save(ctx, level); err != nil {
				return err
			}

			toLoc := req.ToLocationID
			moveKey := MovementKeyForReceipt(receiptKey, ln.ProductID, toLoc, req.ReceivedAt, ln.QtyReceived)
			movement, err := inventory.NewStockMovement(
				ln.ProductID, nil, &toLoc, inventory.MovementTypeReceipt,
				ln.QtyReceived, "GOODS_RECEIPT", req.ReceivedAt, req.ActorID, moveKey)
			if err != nil {
				return err
			}
			if err := repos.Movements().Append(ctx, movement); err != nil {
				return err
			}
		}

		if err := s.advancePO(ctx, repos, po); err != nil {
			return err
		}

		productIDs := make([]int64, 0, len(lines))
		for _, ln := range lines {
			productIDs = append(productIDs, ln.ProductID)
		}
		if err := s.rebuilder.RebuildWithin(ctx, repos, po.SiteID, productIDs); err != nil {
			return err
		}

		entry := audit.NewLog(req.ActorID, "GOODS_RECEIPT_POSTED", "goods_receipt", fmt.Sprintf("%d", gr.ID), nil)
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		out = ToGoodsReceiptResponse(gr, false)
		return nil
	})

	if errors.Is(err, shared.ErrIdempotencyConflict) {
		winner, readErr := s.goodsReceipts.FindByIdempotencyKey(ctx, receiptKey)
		if readErr != nil {
			return nil, shared.ErrIntegrity
		}
		telemetry.AddEvent(span, "receipt_replayed")
		return ToGoodsReceiptResponse(winner, true), nil
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return out, nil
}

// advancePO moves the PO to PARTIAL on a first receive and to CLOSED once
// every line is fully received.
func (s *ReceivingService) advancePO(ctx context.Context, repos inventoryapp.TransactionalRepositories, po *procurement.PurchaseOrder) error {
	received, err := repos.GoodsReceipts().SumReceivedForPO(ctx, po.ID)
	if err != nil {
		return err
	}

	complete := true
	for _, ln := range po.Lines {
		if received[ln.ProductID] < ln.QtyOrdered {
			complete = false
			break
		}
	}

	target := procurement.POStatusPartial
	if complete {
		target = procurement.POStatusClosed
	}
	if po.Status == target {
		return nil
	}
	if !po.Status.CanTransitionTo(target) {
		return nil
	}
	if err := po.TransitionTo(target); err != nil {
		return err
	}
	return repos.PurchaseOrders().Save(ctx, po)
}

// GetReceipt returns one goods receipt with its lines
func (s *ReceivingService) GetReceipt(ctx context.Context, id int64) (*GoodsReceiptResponse, error) {
	gr, err := s.goodsReceipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGoodsReceiptResponse(gr, false), nil
}
