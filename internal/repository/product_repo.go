package repository

import (
	"context"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository is the data access contract for finished-goods records.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error)
	FindByExternalCode(ctx context.Context, ownerID uuid.UUID, code string) (*model.Product, error)
	FindByNameFold(ctx context.Context, ownerID uuid.UUID, name string) (*model.Product, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// ReplaceRecipe swaps a product's entire recipe for the given lines.
	// The incoming list is the new source of truth.
	ReplaceRecipe(ctx context.Context, productID uuid.UUID, lines []model.RecipeItem) error

	// AddQuantityTx applies a signed quantity delta inside a transaction.
	AddQuantityTx(tx *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Recipe", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("owner_id = ? AND id = ?", ownerID, id).First(&p).Error
	return &p, err
}

func (r *productRepo) FindByExternalCode(ctx context.Context, ownerID uuid.UUID, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Recipe").
		Where("owner_id = ? AND external_code = ?", ownerID, code).First(&p).Error
	return &p, err
}

func (r *productRepo) FindByNameFold(ctx context.Context, ownerID uuid.UUID, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Recipe").
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("owner_id = ?", ownerID)
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Recipe", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Recipe").
		Where("owner_id = ?", ownerID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Recipe").Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&model.Product{}).Error
}

func (r *productRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *productRepo) ReplaceRecipe(ctx context.Context, productID uuid.UUID, lines []model.RecipeItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.RecipeItem{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *productRepo) AddQuantityTx(tx *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Product{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
