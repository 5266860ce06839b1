package service

import (
	"context"
	"fmt"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/infra"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"
	"github.com/unstopDD/sklad-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockService performs the two ledger transactions: production runs and
// write-offs. Both are all-or-nothing — the sufficiency check happens before
// any write, and all writes (including the audit row) share one DB
// transaction.
type StockService interface {
	Produce(ctx context.Context, ownerID uuid.UUID, req dto.ProduceRequest) (*dto.ProduceResponse, error)
	WriteOff(ctx context.Context, ownerID uuid.UUID, req dto.WriteOffRequest) (*dto.WriteOffResponse, error)
}

type stockService struct {
	ingredientRepo repository.IngredientRepository
	productRepo    repository.ProductRepository
	historyRepo    repository.HistoryRepository
	dispatcher     *worker.Dispatcher
}

func NewStockService(
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	dispatcher *worker.Dispatcher,
) StockService {
	return &stockService{
		ingredientRepo: ingredientRepo,
		productRepo:    productRepo,
		historyRepo:    historyRepo,
		dispatcher:     dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Produce ──────────────────────────────────────────────────────────────────
// 1. Resolve the product and validate quantity > 0.
// 2. Pre-flight per ingredient, summing duplicate recipe lines, collecting
//    ALL shortfalls — no short-circuit, so the caller learns about every
//    deficient ingredient in one response.
// 3. Any shortfall aborts with InsufficientStockError before any write.
// 4. Otherwise deduct every line, credit the product and append exactly one
//    production history row, all in one DB transaction.

func (s *stockService) Produce(ctx context.Context, ownerID uuid.UUID, req dto.ProduceRequest) (*dto.ProduceResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	product, err := s.productRepo.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	// Pre-flight: duplicate recipe lines double-count, so sum the required
	// amount per ingredient FIRST, then check each ingredient's total against
	// its stock once. Checking lines independently would let two half-sized
	// lines pass while their sum drives the quantity negative.
	type resolvedLine struct {
		ingredient *model.Ingredient
		required   decimal.Decimal
	}
	required := make(map[uuid.UUID]decimal.Decimal, len(product.Recipe))
	order := make([]uuid.UUID, 0, len(product.Recipe))
	for _, line := range product.Recipe {
		if _, seen := required[line.IngredientID]; !seen {
			order = append(order, line.IngredientID)
		}
		required[line.IngredientID] = required[line.IngredientID].Add(line.Amount.Mul(req.Quantity))
	}

	var resolved []resolvedLine
	var shortfalls []Shortfall

	for _, ingID := range order {
		need := required[ingID]
		ing, err := s.ingredientRepo.FindByID(ctx, ownerID, ingID)
		if err != nil {
			shortfalls = append(shortfalls, Shortfall{
				Name:    fmt.Sprintf("ingredient %s (deleted)", ingID),
				Missing: need,
				Unit:    product.Unit,
			})
			continue
		}
		if ing.Quantity.LessThan(need) {
			shortfalls = append(shortfalls, Shortfall{
				Name:    ing.Name,
				Missing: need.Sub(ing.Quantity),
				Unit:    ing.Unit,
			})
			continue
		}
		resolved = append(resolved, resolvedLine{ingredient: ing, required: need})
	}

	if len(shortfalls) > 0 {
		return nil, &InsufficientStockError{Shortfalls: shortfalls}
	}

	// Commit phase: one transaction covering every deduction, the product
	// credit and the audit row.
	txErr := runTx(ctx, s.ingredientRepo.DB(), func(tx *gorm.DB) error {
		for _, line := range resolved {
			if err := s.ingredientRepo.AddQuantityTx(tx, ownerID, line.ingredient.ID, line.required.Neg()); err != nil {
				return fmt.Errorf("deducting %q: %w", line.ingredient.Name, err)
			}
		}
		if err := s.productRepo.AddQuantityTx(tx, ownerID, product.ID, req.Quantity); err != nil {
			return fmt.Errorf("crediting %q: %w", product.Name, err)
		}
		return s.historyRepo.CreateTx(tx, &model.HistoryEntry{
			OwnerID: ownerID,
			Type:    model.HistoryProduction,
			Description: fmt.Sprintf("Produced %s %s of %q",
				req.Quantity.String(), product.Unit, product.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	infra.ProductionsTotal.Inc()
	s.enqueueAlertScan(ctx, ownerID)

	resp := &dto.ProduceResponse{
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		Produced:    req.Quantity,
		NewQuantity: product.Quantity.Add(req.Quantity),
		Consumed:    make([]dto.ConsumedLine, 0, len(resolved)),
	}
	for _, line := range resolved {
		resp.Consumed = append(resp.Consumed, dto.ConsumedLine{
			IngredientID: line.ingredient.ID.String(),
			Name:         line.ingredient.Name,
			Consumed:     line.required,
			Remaining:    line.ingredient.Quantity.Sub(line.required),
		})
	}
	return resp, nil
}

// ── WriteOff ─────────────────────────────────────────────────────────────────
// Strictly simpler than Produce: one item, one check, one decrement.

func (s *stockService) WriteOff(ctx context.Context, ownerID uuid.UUID, req dto.WriteOffRequest) (*dto.WriteOffResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid item id", ErrValidation)
	}

	var name, unit string
	var before decimal.Decimal
	var deduct func(tx *gorm.DB) error

	switch req.ItemType {
	case dto.ItemIngredient:
		ing, err := s.ingredientRepo.FindByID(ctx, ownerID, itemID)
		if err != nil {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, itemID)
		}
		name, unit, before = ing.Name, ing.Unit, ing.Quantity
		deduct = func(tx *gorm.DB) error {
			return s.ingredientRepo.AddQuantityTx(tx, ownerID, itemID, req.Quantity.Neg())
		}
	case dto.ItemProduct:
		p, err := s.productRepo.FindByID(ctx, ownerID, itemID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, itemID)
		}
		name, unit, before = p.Name, p.Unit, p.Quantity
		deduct = func(tx *gorm.DB) error {
			return s.productRepo.AddQuantityTx(tx, ownerID, itemID, req.Quantity.Neg())
		}
	default:
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, req.ItemType)
	}

	if before.LessThan(req.Quantity) {
		return nil, &InsufficientStockError{Shortfalls: []Shortfall{{
			Name:    name,
			Missing: req.Quantity.Sub(before),
			Unit:    unit,
		}}}
	}

	description := fmt.Sprintf("Wrote off %s %s of %q", req.Quantity.String(), unit, name)
	if req.Reason != "" {
		description += ": " + req.Reason
	}

	txErr := runTx(ctx, s.ingredientRepo.DB(), func(tx *gorm.DB) error {
		if err := deduct(tx); err != nil {
			return err
		}
		return s.historyRepo.CreateTx(tx, &model.HistoryEntry{
			OwnerID:     ownerID,
			Type:        model.HistoryWriteoff,
			Description: description,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	infra.WriteoffsTotal.Inc()
	s.enqueueAlertScan(ctx, ownerID)

	return &dto.WriteOffResponse{
		ItemType:    req.ItemType,
		ItemID:      itemID.String(),
		Name:        name,
		WrittenOff:  req.Quantity,
		NewQuantity: before.Sub(req.Quantity),
	}, nil
}

// enqueueAlertScan schedules an async low-stock scan for the owner.
// Best-effort — a queue failure never fails the committed transaction.
func (s *stockService) enqueueAlertScan(ctx context.Context, ownerID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueAlertScan(ctx, ownerID)
}
