package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// GormGoodsReceiptRepository implements GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByID finds a goods receipt with its lines
func (r *GormGoodsReceiptRepository) FindByID(ctx context.Context, id int64) (*procurement.GoodsReceipt, error) {
	var receipt procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).Preload("Lines").First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByIdempotencyKey looks up the receipt recorded under the key
func (r *GormGoodsReceiptRepository) FindByIdempotencyKey(ctx context.Context, key string) (*procurement.GoodsReceipt, error) {
	var receipt procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("idempotency_key = ?", key).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// Create inserts the receipt header. The unique index on idempotency_key
// is the duplicate authority; a rejected insert surfaces as
// shared.ErrIdempotencyConflict.
func (r *GormGoodsReceiptRepository) Create(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	if err := r.db.WithContext(ctx).Omit("Lines").Create(receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrIdempotencyConflict
		}
		return err
	}
	return nil
}

// CreateLine inserts a receipt line
func (r *GormGoodsReceiptRepository) CreateLine(ctx context.Context, line *procurement.GoodsReceiptLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// SumPostedReceivedByProduct sums usable received quantity per product over
// the site's POSTED receipts. Receipt status alone decides inclusion; the
// parent PO's status is never consulted.
func (r *GormGoodsReceiptRepository) SumPostedReceivedByProduct(ctx context.Context, siteID int64, productIDs []int64) (map[int64]int64, error) {
	sums := make(map[int64]int64, len(productIDs))
	if len(productIDs) == 0 {
		return sums, nil
	}

	rows := []struct {
		ProductID int64
		Total     int64
	}{}
	err := r.db.WithContext(ctx).
		Table("goods_receipt_lines").
		Select("goods_receipt_lines.product_id AS product_id, COALESCE(SUM(goods_receipt_lines.qty_received - goods_receipt_lines.qty_damaged), 0) AS total").
		Joins("JOIN goods_receipts ON goods_receipts.id = goods_receipt_lines.receipt_id").
		Where("goods_receipts.site_id = ?", siteID).
		Where("goods_receipts.status = ?", procurement.ReceiptStatusPosted).
		Where("goods_receipt_lines.product_id IN ?", productIDs).
		Group("goods_receipt_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.ProductID] = row.Total
	}
	return sums, nil
}

// SumReceivedForPO sums received quantity per product over the PO's POSTED
// receipts, used to decide partial vs closed after a receive
func (r *GormGoodsReceiptRepository) SumReceivedForPO(ctx context.Context, poID int64) (map[int64]int64, error) {
	rows := []struct {
		ProductID int64
		Total     int64
	}{}
	err := r.db.WithContext(ctx).
		Table("goods_receipt_lines").
		Select("goods_receipt_lines.product_id AS product_id, COALESCE(SUM(goods_receipt_lines.qty_received), 0) AS total").
		Joins("JOIN goods_receipts ON goods_receipts.id = goods_receipt_lines.receipt_id").
		Where("goods_receipts.po_id = ?", poID).
		Where("goods_receipts.status = ?", procurement.ReceiptStatusPosted).
		Group("goods_receipt_lines.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[int64]int64, len(rows))
	for _, row := range rows {
		sums[row.ProductID] = row.Total
	}
	return sums, nil
}

var _ procurement.GoodsReceiptRepository = (*GormGoodsReceiptRepository)(nil)
