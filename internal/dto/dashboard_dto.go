package dto

import "github.com/shopspring/decimal"

// LowStockItem classification reasons.
const (
	ReasonOutOfStock   = "out_of_stock"
	ReasonBelowMinimum = "below_minimum"
)

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LowStockItem is one dashboard alert line. Items with zero stock are always
// surfaced; items merely below their minimum only when recently active.
type LowStockItem struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit"`
	Reason       string          `json:"reason"`
}

type DashboardResponse struct {
	LowStock        []LowStockItem `json:"low_stock"`
	IngredientCount int64          `json:"ingredient_count"`
	ProductCount    int64          `json:"product_count"`
	// StockValue sums price_per_unit * quantity over priced ingredients —
	// informational only.
	StockValue decimal.Decimal `json:"stock_value"`
}
