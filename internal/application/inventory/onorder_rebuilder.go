package inventory

import (
	"context"
	"sort"
)

// OnOrderRebuilder recomputes the qty_on_order projection at a site's
// inbound dock. The projection is never incremented in place: each rebuild
// recomputes it from scratch as
//
//	max(0, sum(qty_ordered over engaged POs) -
//	       sum(qty_received - qty_damaged over POSTED receipts))
//
// per product, restricted by PO status on the ordered side and by receipt
// status alone on the received side. Recomputing from source makes the
// rebuild self-healing: a missed or duplicated trigger converges on the
// next run.
type OnOrderRebuilder struct {
	scope TransactionScope
}

// NewOnOrderRebuilder creates an OnOrderRebuilder
func NewOnOrderRebuilder(scope TransactionScope) *OnOrderRebuilder {
	return &OnOrderRebuilder{scope: scope}
}

// Rebuild recomputes the projection for the given products in its own
// transaction. Used when a PO lifecycle change alone moved the engaged set.
func (r *OnOrderRebuilder) Rebuild(ctx context.Context, siteID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return r.RebuildWithin(ctx, repos, siteID, productIDs)
	})
}

// RebuildWithin recomputes the projection inside an already-open
// transaction, so a goods receipt and its projection update commit together.
func (r *OnOrderRebuilder) RebuildWithin(ctx context.Context, repos TransactionalRepositories, siteID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	dock, err := repos.Locations().FindInboundDock(ctx, siteID)
	if err != nil {
		return err
	}

	ordered, err := repos.PurchaseOrders().SumOrderedByProduct(ctx, siteID, productIDs)
	if err != nil {
		return err
	}
	received, err := repos.GoodsReceipts().SumPostedReceivedByProduct(ctx, siteID, productIDs)
	if err != nil {
		return err
	}

	ids := make([]int64, len(productIDs))
	copy(ids, productIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, pid := range ids {
		level, err := repos.StockLevels().FindOrCreateForUpdate(ctx, pid, dock.ID)
		if err != nil {
			return err
		}
		level.SetOnOrder(ordered[pid] - received[pid])
		if err := repos.StockLevels().Save(ctx, level); err != nil {
			return err
		}
	}
	return nil
}
