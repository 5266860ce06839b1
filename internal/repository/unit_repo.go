package repository

import (
	"context"

	"github.com/unstopDD/sklad-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitRepository is the data access contract for measurement units.
// Units are a flat per-owner name set; items reference them by name only.
type UnitRepository interface {
	Create(ctx context.Context, u *model.Unit) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Unit, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Unit, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) Create(ctx context.Context, u *model.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unitRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Unit, error) {
	var u model.Unit
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&u).Error
	return &u, err
}

func (r *unitRepo) List(ctx context.Context, ownerID uuid.UUID) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&model.Unit{}).Error
}
