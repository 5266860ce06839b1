package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a finished-goods stock record with a bill of materials.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name         string          `gorm:"not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Unit         string          `gorm:"not null"`
	ExternalCode *string         `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Recipe is replaced wholesale on every product update — the incoming
	// list is the new source of truth, there is no line-level merge.
	Recipe []RecipeItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// RecipeItem is one bill-of-materials line: producing ONE unit of the product
// consumes Amount of the referenced ingredient. Duplicate ingredient lines are
// allowed and double-count.
type RecipeItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Position     int             `gorm:"not null;default:0"`
}
