package memory

import (
	"context"
	"sync"

	"github.com/wms/backend/internal/domain/audit"
)

// AuditLogRepository is an in-memory audit.LogRepository
type AuditLogRepository struct {
	mu      sync.Mutex
	entries []audit.Log
}

// NewAuditLogRepository creates an empty AuditLogRepository
func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Append(_ context.Context, entry *audit.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

// Entries returns a copy of the stored entries
func (r *AuditLogRepository) Entries() []audit.Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]audit.Log, len(r.entries))
	copy(out, r.entries)
	return out
}

var _ audit.LogRepository = (*AuditLogRepository)(nil)
