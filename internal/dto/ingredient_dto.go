package dto

import "github.com/shopspring/decimal"

// Quantity merge modes for upserts. "replace" is what a stock count does:
// the provided quantity becomes the stored quantity. "accumulate" is what a
// supply delivery does: the provided quantity is added on top.
const (
	MergeReplace    = "replace"
	MergeAccumulate = "accumulate"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpsertIngredientRequest creates or updates an ingredient. An existing record
// is resolved by id, then external_code, then case-insensitive name.
type UpsertIngredientRequest struct {
	ID           *string          `json:"id"             validate:"omitempty,uuid"`
	Name         string           `json:"name"           validate:"required,min=1,max=120"`
	Quantity     decimal.Decimal  `json:"quantity"       validate:"min=0"`
	Unit         string           `json:"unit"           validate:"required,max=20"`
	MinStock     decimal.Decimal  `json:"min_stock"      validate:"min=0"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit" validate:"omitempty,min=0"`
	ExternalCode *string          `json:"external_code"  validate:"omitempty,max=64"`
	Mode         string           `json:"mode"           validate:"omitempty,oneof=replace accumulate"`
}

type AdjustQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type IngredientFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredientResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	ExternalCode *string          `json:"external_code,omitempty"`
}

type IngredientListResponse struct {
	Data  []IngredientResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
