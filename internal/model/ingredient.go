package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a raw-material stock record. Quantity never goes below zero:
// transactions that would drive it negative are rejected before any write.
type Ingredient struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name     string          `gorm:"not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Unit     string          `gorm:"not null"`
	// MinStock is a low-stock alert threshold; it never blocks operations.
	MinStock     decimal.Decimal  `gorm:"type:decimal(14,3);not null;default:0"`
	PricePerUnit *decimal.Decimal `gorm:"type:decimal(14,2)"`
	// ExternalCode is an alternate match key for spreadsheet imports.
	ExternalCode *string `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
