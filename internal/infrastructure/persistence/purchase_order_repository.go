package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id int64) (*procurement.PurchaseOrder, error) {
	var po procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByPONumber finds a purchase order by its unique number
func (r *GormPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	var po procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("po_number = ?", poNumber).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindAll returns purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).Preload("Lines")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if siteID, ok := filter.Filters["site_id"]; ok {
		query = query.Where("site_id = ?", siteID)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var pos []procurement.PurchaseOrder
	query = applyFilter(query, filter, map[string]bool{"id": true, "po_number": true, "created_at": true})
	if err := query.Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// Create persists the order together with its lines
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *procurement.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists header changes. Lines are immutable after creation and are
// deliberately left out of the write.
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(po).Error
}

// SumOrderedByProduct sums qty_ordered per product over the site's engaged
// purchase orders, restricted to the given products
func (r *GormPurchaseOrderRepository) SumOrderedByProduct(ctx context.Context, siteID int64, productIDs []int64) (map[int64]int64, error) {
	sums := make(map[int64]int64, len(productIDs))
	if len(productIDs) == 0 {
		return sums, nil
	}

	rows := []struct {
		ProductID int64
		Total     int64
	}{}
	err := r.db.WithContext(ctx).
		Table("purchase_order_lines").
		Select("purchase_order_lines.product_id AS product_id, COALESCE(SUM(purchase_order_lines.qty_ordered), 0) AS total").
		Joins("JOIN purchase_orders ON purchase_orders.id = purchase_order_lines.po_id").
		Where("purchase_orders.site_id = ?", siteID).
		Where("purchase_orders.status IN ?", procurement.EngagedStatuses).
		Where("purchase_order_lines.product_id IN ?", productIDs).
		Group("purchase_order_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.ProductID] = row.Total
	}
	return sums, nil
}

var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
