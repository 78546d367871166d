// Package audit records who did what to which entity. Entries are
// append-only and written inside the same transaction as the change they
// describe.
package audit

import (
	"context"
	"time"
)

// Log is a single audit entry
type Log struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ActorID    *int64    `gorm:""`
	Action     string    `gorm:"type:varchar(64);not null"`
	EntityType string    `gorm:"type:varchar(64);not null;index:ix_audit_entity,priority:1"`
	EntityID   string    `gorm:"type:varchar(64);not null;index:ix_audit_entity,priority:2"`
	Meta       *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "audit_log"
}

// NewLog creates an audit entry
func NewLog(actorID int64, action, entityType, entityID string, meta *string) *Log {
	var actor *int64
	if actorID > 0 {
		actor = &actorID
	}
	return &Log{
		ActorID:    actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Meta:       meta,
		CreatedAt:  time.Now(),
	}
}

// LogRepository appends audit entries
type LogRepository interface {
	Append(ctx context.Context, entry *Log) error
}
