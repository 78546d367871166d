package inventory

import (
	"context"
	"sort"

	"github.com/wms/backend/internal/domain/inventory"
)

// stockKey identifies one stock row
type stockKey struct {
	ProductID  int64
	LocationID int64
}

// lockStockRows acquires row locks for the given keys in canonical
// (product_id, location_id) ascending order. Every multi-row mutation locks
// through here so two writers touching the same pairs can never deadlock.
func lockStockRows(ctx context.Context, repo inventory.StockLevelRepository, keys []stockKey) (map[stockKey]*inventory.StockLevel, error) {
	sorted := make([]stockKey, 0, len(keys))
	seen := make(map[stockKey]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ProductID != sorted[j].ProductID {
			return sorted[i].ProductID < sorted[j].ProductID
		}
		return sorted[i].LocationID < sorted[j].LocationID
	})

	levels := make(map[stockKey]*inventory.StockLevel, len(sorted))
	for _, k := range sorted {
		level, err := repo.FindOrCreateForUpdate(ctx, k.ProductID, k.LocationID)
		if err != nil {
			return nil, err
		}
		levels[k] = level
	}
	return levels, nil
}
