package repository

import (
	"context"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientRepository is the data access contract for raw-material records.
// Services depend on this interface, not on the GORM implementation, so the
// business logic can be unit-tested against in-memory stubs.
type IngredientRepository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Ingredient, error)
	FindByExternalCode(ctx context.Context, ownerID uuid.UUID, code string) (*model.Ingredient, error)
	FindByNameFold(ctx context.Context, ownerID uuid.UUID, name string) (*model.Ingredient, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.IngredientFilter) ([]model.Ingredient, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Ingredient, error)
	Update(ctx context.Context, ing *model.Ingredient) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// AddQuantityTx applies a signed quantity delta inside a transaction.
	AddQuantityTx(tx *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&ing).Error
	return &ing, err
}

func (r *ingredientRepo) FindByExternalCode(ctx context.Context, ownerID uuid.UUID, code string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).Where("owner_id = ? AND external_code = ?", ownerID, code).First(&ing).Error
	return &ing, err
}

func (r *ingredientRepo) FindByNameFold(ctx context.Context, ownerID uuid.UUID, name string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.db.WithContext(ctx).Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).First(&ing).Error
	return &ing, err
}

func (r *ingredientRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var ingredients []model.Ingredient
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("owner_id = ?", ownerID)
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, ing *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredientRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&model.Ingredient{}).Error
}

func (r *ingredientRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *ingredientRepo) AddQuantityTx(tx *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Ingredient{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *ingredientRepo) DB() *gorm.DB { return r.db }
