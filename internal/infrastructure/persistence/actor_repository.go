package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/masterdata"
	"github.com/wms/backend/internal/domain/shared"
)

// GormActorRepository implements ActorRepository using GORM
type GormActorRepository struct {
	db *gorm.DB
}

// NewGormActorRepository creates a new GormActorRepository
func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

// FindByID finds an actor by its ID
func (r *GormActorRepository) FindByID(ctx context.Context, id int64) (*masterdata.Actor, error) {
	var actor masterdata.Actor
	if err := r.db.WithContext(ctx).First(&actor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &actor, nil
}

// Create persists a new actor
func (r *GormActorRepository) Create(ctx context.Context, actor *masterdata.Actor) error {
	return r.db.WithContext(ctx).Create(actor).Error
}

var _ masterdata.ActorRepository = (*GormActorRepository)(nil)
