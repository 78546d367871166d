package inventory

import "context"

// StockFilter narrows stock listing queries. All fields are optional and
// AND-composed. SiteID filters through the location's site.
type StockFilter struct {
	SiteID     *int64
	LocationID *int64
	ProductID  *int64
}

// StockLevelRepository provides access to stock level rows.
//
// FindOrCreateForUpdate is the only way the mutation engine reads a row it
// intends to change: it takes a pessimistic row lock (SELECT ... FOR UPDATE)
// and inserts a zero row first when the pair has never been touched.
// Callers are responsible for acquiring locks in canonical
// (product_id, location_id) ascending order.
type StockLevelRepository interface {
	FindOrCreateForUpdate(ctx context.Context, productID, locationID int64) (*StockLevel, error)
	Save(ctx context.Context, level *StockLevel) error
	List(ctx context.Context, filter StockFilter) ([]StockLevel, error)
}

// StockMovementRepository provides append-only access to the audit spine.
//
// Append must surface shared.ErrIdempotencyConflict when the unique
// constraint on idempotency_key rejects the row, so the engine can roll
// back and read the winner.
type StockMovementRepository interface {
	FindByIdempotencyKey(ctx context.Context, key string) (*StockMovement, error)
	FindByProduct(ctx context.Context, productID int64, limit int) ([]StockMovement, error)
	Append(ctx context.Context, movement *StockMovement) error
}
