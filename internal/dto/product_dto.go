package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecipeLineRequest is one bill-of-materials line: amount of the ingredient
// consumed per ONE produced unit.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Amount       decimal.Decimal `json:"amount"        validate:"required"`
}

// UpsertProductRequest creates or updates a product. The recipe list replaces
// the stored one wholesale.
type UpsertProductRequest struct {
	ID           *string             `json:"id"            validate:"omitempty,uuid"`
	Name         string              `json:"name"          validate:"required,min=1,max=120"`
	Quantity     decimal.Decimal     `json:"quantity"      validate:"min=0"`
	Unit         string              `json:"unit"          validate:"required,max=20"`
	ExternalCode *string             `json:"external_code" validate:"omitempty,max=64"`
	Recipe       []RecipeLineRequest `json:"recipe"        validate:"dive"`
	Mode         string              `json:"mode"          validate:"omitempty,oneof=replace accumulate"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecipeLineResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Amount       decimal.Decimal `json:"amount"`
}

type ProductResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Quantity     decimal.Decimal      `json:"quantity"`
	Unit         string               `json:"unit"`
	ExternalCode *string              `json:"external_code,omitempty"`
	Recipe       []RecipeLineResponse `json:"recipe"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
