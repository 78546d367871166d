package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindOrCreateForUpdate locks the stock row with SELECT ... FOR UPDATE,
// inserting a zero row first when the pair has never been touched. Callers
// acquire locks in canonical (product_id, location_id) ascending order.
func (r *GormStockLevelRepository) FindOrCreateForUpdate(ctx context.Context, productID, locationID int64) (*inventory.StockLevel, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var level inventory.StockLevel
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND location_id = ?", productID, locationID).
			First(&level).Error
		if err == nil {
			return &level, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		created := inventory.NewStockLevel(productID, locationID)
		if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent transaction inserted the row first;
				// loop back and lock theirs.
				continue
			}
			return nil, err
		}
		// The insert itself holds the row lock for this transaction.
		return created, nil
	}
	return nil, shared.ErrIntegrity
}

// Save persists a modified stock level row
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// List returns stock levels matching the filter, site resolved through
// the location table
func (r *GormStockLevelRepository) List(ctx context.Context, filter inventory.StockFilter) ([]inventory.StockLevel, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockLevel{})

	if filter.SiteID != nil {
		query = query.
			Joins("JOIN locations ON locations.id = stock_levels.location_id").
			Where("locations.site_id = ?", *filter.SiteID)
	}
	if filter.LocationID != nil {
		query = query.Where("stock_levels.location_id = ?", *filter.LocationID)
	}
	if filter.ProductID != nil {
		query = query.Where("stock_levels.product_id = ?", *filter.ProductID)
	}

	var levels []inventory.StockLevel
	if err := query.
		Order("stock_levels.product_id, stock_levels.location_id").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
