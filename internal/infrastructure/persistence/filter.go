package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering from a shared.Filter.
// The order column is checked against the caller's whitelist so filter
// input can never reach the ORDER BY clause unvalidated.
func applyFilter(query *gorm.DB, filter shared.Filter, sortable map[string]bool) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" || !sortable[orderBy] {
		orderBy = "id"
	}
	dir := "DESC"
	if filter.OrderDir == "asc" {
		dir = "ASC"
	}
	return query.
		Order(fmt.Sprintf("%s %s", orderBy, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
