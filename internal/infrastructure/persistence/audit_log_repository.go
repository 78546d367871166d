package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/audit"
)

// GormAuditLogRepository implements LogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append writes an audit entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
