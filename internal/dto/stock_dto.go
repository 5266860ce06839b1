package dto

import "github.com/shopspring/decimal"

// Write-off item kinds.
const (
	ItemIngredient = "ingredient"
	ItemProduct    = "product"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProduceRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required"`
}

type WriteOffRequest struct {
	ItemType string          `json:"item_type" validate:"required,oneof=ingredient product"`
	ItemID   string          `json:"item_id"   validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"  validate:"required"`
	Reason   string          `json:"reason"    validate:"max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ConsumedLine reports one ingredient deduction made by a production run.
type ConsumedLine struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Consumed     decimal.Decimal `json:"consumed"`
	Remaining    decimal.Decimal `json:"remaining"`
}

type ProduceResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Produced    decimal.Decimal `json:"produced"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Consumed    []ConsumedLine  `json:"consumed"`
}

type WriteOffResponse struct {
	ItemType    string          `json:"item_type"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	WrittenOff  decimal.Decimal `json:"written_off"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}
