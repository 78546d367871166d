package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderRepository is an in-memory procurement.PurchaseOrderRepository
type PurchaseOrderRepository struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]procurement.PurchaseOrder
}

// NewPurchaseOrderRepository creates an empty PurchaseOrderRepository
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{nextID: 1, orders: make(map[int64]procurement.PurchaseOrder)}
}

func clonePO(po procurement.PurchaseOrder) *procurement.PurchaseOrder {
	copied := po
	copied.Lines = make([]procurement.PurchaseOrderLine, len(po.Lines))
	copy(copied.Lines, po.Lines)
	return &copied
}

func (r *PurchaseOrderRepository) FindByID(_ context.Context, id int64) (*procurement.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if po, ok := r.orders[id]; ok {
		return clonePO(po), nil
	}
	return nil, shared.ErrNotFound
}

func (r *PurchaseOrderRepository) FindByPONumber(_ context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, po := range r.orders {
		if po.PONumber == poNumber {
			return clonePO(po), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *PurchaseOrderRepository) FindAll(_ context.Context, _ shared.Filter) ([]procurement.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]procurement.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		out = append(out, *clonePO(po))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PurchaseOrderRepository) Create(_ context.Context, po *procurement.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.PONumber == po.PONumber {
			return shared.ErrAlreadyExists
		}
	}
	po.ID = r.nextID
	r.nextID++
	for i := range po.Lines {
		po.Lines[i].POID = po.ID
	}
	r.orders[po.ID] = *clonePO(*po)
	return nil
}

func (r *PurchaseOrderRepository) Save(_ context.Context, po *procurement.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[po.ID]; !ok {
		return shared.ErrNotFound
	}
	r.orders[po.ID] = *clonePO(*po)
	return nil
}

func (r *PurchaseOrderRepository) SumOrderedByProduct(_ context.Context, siteID int64, productIDs []int64) (map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[int64]int64)
	for _, po := range r.orders {
		if po.SiteID != siteID || !po.Status.IsEngaged() {
			continue
		}
		for _, ln := range po.Lines {
			if _, ok := wanted[ln.ProductID]; ok {
				out[ln.ProductID] += ln.QtyOrdered
			}
		}
	}
	return out, nil
}

var _ procurement.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// GoodsReceiptRepository is an in-memory procurement.GoodsReceiptRepository
type GoodsReceiptRepository struct {
	mu       sync.Mutex
	nextID   int64
	receipts map[int64]procurement.GoodsReceipt
	byKey    map[string]int64
}

// NewGoodsReceiptRepository creates an empty GoodsReceiptRepository
func NewGoodsReceiptRepository() *GoodsReceiptRepository {
	return &GoodsReceiptRepository{
		nextID:   1,
		receipts: make(map[int64]procurement.GoodsReceipt),
		byKey:    make(map[string]int64),
	}
}

func cloneReceipt(gr procurement.GoodsReceipt) *procurement.GoodsReceipt {
	copied := gr
	copied.Lines = make([]procurement.GoodsReceiptLine, len(gr.Lines))
	copy(copied.Lines, gr.Lines)
	return &copied
}

func (r *GoodsReceiptRepository) FindByID(_ context.Context, id int64) (*procurement.GoodsReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gr, ok := r.receipts[id]; ok {
		return cloneReceipt(gr), nil
	}
	return nil, shared.ErrNotFound
}

func (r *GoodsReceiptRepository) FindByIdempotencyKey(_ context.Context, key string) (*procurement.GoodsReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[key]; ok {
		gr := r.receipts[id]
		return cloneReceipt(gr), nil
	}
	return nil, shared.ErrNotFound
}

func (r *GoodsReceiptRepository) Create(_ context.Context, receipt *procurement.GoodsReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if receipt.IdempotencyKey != nil {
		if _, ok := r.byKey[*receipt.IdempotencyKey]; ok {
			return shared.ErrIdempotencyConflict
		}
	}
	receipt.ID = r.nextID
	r.nextID++
	r.receipts[receipt.ID] = *cloneReceipt(*receipt)
	if receipt.IdempotencyKey != nil {
		r.byKey[*receipt.IdempotencyKey] = receipt.ID
	}
	return nil
}

func (r *GoodsReceiptRepository) CreateLine(_ context.Context, line *procurement.GoodsReceiptLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gr, ok := r.receipts[line.ReceiptID]
	if !ok {
		return shared.ErrNotFound
	}
	gr.Lines = append(gr.Lines, *line)
	r.receipts[line.ReceiptID] = gr
	return nil
}

func (r *GoodsReceiptRepository) SumPostedReceivedByProduct(_ context.Context, siteID int64, productIDs []int64) (map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[int64]int64)
	for _, gr := range r.receipts {
		if gr.SiteID != siteID || gr.Status != procurement.ReceiptStatusPosted {
			continue
		}
		for _, ln := range gr.Lines {
			if _, ok := wanted[ln.ProductID]; ok {
				out[ln.ProductID] += ln.QtyReceived - ln.QtyDamaged
			}
		}
	}
	return out, nil
}

func (r *GoodsReceiptRepository) SumReceivedForPO(_ context.Context, poID int64) (map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]int64)
	for _, gr := range r.receipts {
		if gr.POID != poID || gr.Status != procurement.ReceiptStatusPosted {
			continue
		}
		for _, ln := range gr.Lines {
			out[ln.ProductID] += ln.QtyReceived
		}
	}
	return out, nil
}

var _ procurement.GoodsReceiptRepository = (*GoodsReceiptRepository)(nil)
