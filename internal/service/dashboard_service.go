package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/config"
	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DashboardService derives the low-stock overview. The classification is a
// heuristic: out-of-stock items always surface, items below their minimum
// only when they saw history activity inside the recency window.
type DashboardService interface {
	Overview(ctx context.Context, ownerID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ingredientRepo repository.IngredientRepository
	productRepo    repository.ProductRepository
	history        HistoryService
	rdb            *redis.Client
	cfg            *config.Config
}

func NewDashboardService(
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
	history HistoryService,
	rdb *redis.Client,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		ingredientRepo: ingredientRepo,
		productRepo:    productRepo,
		history:        history,
		rdb:            rdb,
		cfg:            cfg,
	}
}

func (s *dashboardService) Overview(ctx context.Context, ownerID uuid.UUID) (*dto.DashboardResponse, error) {
	cacheKey := "dashboard:" + ownerID.String()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	ingredients, err := s.ingredientRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	active, err := s.history.ActiveItemNames(ctx, ownerID, s.cfg.ActivityWindowDays)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		LowStock:        ClassifyLowStock(ingredients, active),
		IngredientCount: int64(len(ingredients)),
		ProductCount:    productCount,
		StockValue:      stockValue(ingredients),
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			ttl := time.Duration(s.cfg.DashboardCacheTTLSec) * time.Second
			_ = s.rdb.Set(ctx, cacheKey, data, ttl).Err()
		}
	}
	return resp, nil
}

// ClassifyLowStock applies the surfacing rules. Deterministic: the same inputs
// always yield the same list, in ingredient order.
func ClassifyLowStock(ingredients []model.Ingredient, active map[string]bool) []dto.LowStockItem {
	items := make([]dto.LowStockItem, 0)
	for i := range ingredients {
		ing := &ingredients[i]
		var reason string
		switch {
		case ing.Quantity.IsZero():
			reason = dto.ReasonOutOfStock
		case ing.Quantity.LessThan(ing.MinStock) && active[ing.Name]:
			reason = dto.ReasonBelowMinimum
		default:
			continue
		}
		items = append(items, dto.LowStockItem{
			IngredientID: ing.ID.String(),
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			MinStock:     ing.MinStock,
			Unit:         ing.Unit,
			Reason:       reason,
		})
	}
	return items
}

func stockValue(ingredients []model.Ingredient) decimal.Decimal {
	total := decimal.Zero
	for i := range ingredients {
		if ingredients[i].PricePerUnit != nil {
			total = total.Add(ingredients[i].PricePerUnit.Mul(ingredients[i].Quantity))
		}
	}
	return total
}
