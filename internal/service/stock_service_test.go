package service_test

// Production and write-off transaction rules:
//   - sufficient stock: every recipe line deducted, product credited, exactly
//     one production history row
//   - insufficient stock: the error lists EVERY deficient ingredient and
//     nothing is written
//   - write-offs never drive a quantity below zero

import (
	"context"
	"errors"
	"testing"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	owner       uuid.UUID
	ingredients *stubIngredientRepo
	products    *stubProductRepo
	history     *stubHistoryRepo
	svc         service.StockService

	flour *model.Ingredient
	sugar *model.Ingredient
	bread *model.Product
}

// newStockFixture seeds a bakery: 1000 g flour, 500 g sugar, and a Bread
// recipe consuming 500 g flour + 100 g sugar per loaf.
func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		owner:       uuid.New(),
		ingredients: &stubIngredientRepo{},
		products:    &stubProductRepo{},
		history:     &stubHistoryRepo{},
	}
	ctx := context.Background()

	f.flour = &model.Ingredient{
		OwnerID:  f.owner,
		Name:     "Flour",
		Quantity: decimal.NewFromInt(1000),
		Unit:     "g",
	}
	require.NoError(t, f.ingredients.Create(ctx, f.flour))

	f.sugar = &model.Ingredient{
		OwnerID:  f.owner,
		Name:     "Sugar",
		Quantity: decimal.NewFromInt(500),
		Unit:     "g",
	}
	require.NoError(t, f.ingredients.Create(ctx, f.sugar))

	f.bread = &model.Product{
		OwnerID:  f.owner,
		Name:     "Bread",
		Quantity: decimal.Zero,
		Unit:     "pcs",
	}
	require.NoError(t, f.products.Create(ctx, f.bread))
	require.NoError(t, f.products.ReplaceRecipe(ctx, f.bread.ID, []model.RecipeItem{
		{ProductID: f.bread.ID, IngredientID: f.flour.ID, Amount: decimal.NewFromInt(500), Position: 0},
		{ProductID: f.bread.ID, IngredientID: f.sugar.ID, Amount: decimal.NewFromInt(100), Position: 1},
	}))

	f.svc = service.NewStockService(f.ingredients, f.products, f.history, nil)
	return f
}

func (f *stockFixture) quantityOf(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	ing, err := f.ingredients.FindByID(context.Background(), f.owner, id)
	require.NoError(t, err)
	return ing.Quantity
}

func TestProduceDeductsRecipeAndCreditsProduct(t *testing.T) {
	f := newStockFixture(t)

	resp, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.True(t, f.quantityOf(t, f.flour.ID).IsZero(), "flour: 1000 - 2*500")
	assert.True(t, f.quantityOf(t, f.sugar.ID).Equal(decimal.NewFromInt(300)), "sugar: 500 - 2*100")

	bread, err := f.products.FindByID(context.Background(), f.owner, f.bread.ID)
	require.NoError(t, err)
	assert.True(t, bread.Quantity.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, "Bread", resp.ProductName)
	assert.True(t, resp.NewQuantity.Equal(decimal.NewFromInt(2)))
	require.Len(t, resp.Consumed, 2)
	assert.True(t, resp.Consumed[0].Consumed.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.Consumed[0].Remaining.IsZero())

	rows := f.history.ofType(f.owner, model.HistoryProduction)
	require.Len(t, rows, 1, "one production run, one audit row")
	assert.Contains(t, rows[0].Description, `"Bread"`)
}

func TestProduceReportsEveryShortfall(t *testing.T) {
	f := newStockFixture(t)

	// 6 loaves need 3000 g flour (have 1000) and 600 g sugar (have 500) —
	// both lines are short.
	_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(6),
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 2, "both deficient lines reported at once")
	assert.Equal(t, "Flour", stockErr.Shortfalls[0].Name)
	assert.True(t, stockErr.Shortfalls[0].Missing.Equal(decimal.NewFromInt(2000)), "6*500 - 1000")
	assert.Equal(t, "Sugar", stockErr.Shortfalls[1].Name)
	assert.True(t, stockErr.Shortfalls[1].Missing.Equal(decimal.NewFromInt(100)), "6*100 - 500")
}

func TestProduceFailureWritesNothing(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(100),
	})
	require.Error(t, err)

	assert.True(t, f.quantityOf(t, f.flour.ID).Equal(decimal.NewFromInt(1000)), "flour untouched")
	assert.True(t, f.quantityOf(t, f.sugar.ID).Equal(decimal.NewFromInt(500)), "sugar untouched")
	bread, _ := f.products.FindByID(context.Background(), f.owner, f.bread.ID)
	assert.True(t, bread.Quantity.IsZero(), "product untouched")
	assert.Empty(t, f.history.entries, "failed runs never reach the audit log")
}

func TestProduceRejectsNonPositiveQuantity(t *testing.T) {
	f := newStockFixture(t)

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
			ProductID: f.bread.ID.String(),
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, service.ErrValidation, "qty %s", qty)
	}
}

func TestProduceUnknownProduct(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: uuid.NewString(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProduceDeletedRecipeIngredient(t *testing.T) {
	f := newStockFixture(t)
	require.NoError(t, f.ingredients.Delete(context.Background(), f.owner, f.sugar.ID))

	_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 1)
	assert.Contains(t, stockErr.Shortfalls[0].Name, "(deleted)")
	assert.True(t, f.quantityOf(t, f.flour.ID).Equal(decimal.NewFromInt(1000)), "flour untouched")
}

func TestProduceSumsDuplicateRecipeLines(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	// Two flour lines of 600 g each: individually both fit the 1000 g stock,
	// together they do not. The run must be rejected on the 1200 g total.
	dough := &model.Product{OwnerID: f.owner, Name: "Double Dough", Quantity: decimal.Zero, Unit: "pcs"}
	require.NoError(t, f.products.Create(ctx, dough))
	require.NoError(t, f.products.ReplaceRecipe(ctx, dough.ID, []model.RecipeItem{
		{ProductID: dough.ID, IngredientID: f.flour.ID, Amount: decimal.NewFromInt(600), Position: 0},
		{ProductID: dough.ID, IngredientID: f.flour.ID, Amount: decimal.NewFromInt(600), Position: 1},
	}))

	_, err := f.svc.Produce(ctx, f.owner, dto.ProduceRequest{
		ProductID: dough.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 1, "duplicate lines report one aggregated shortfall")
	assert.Equal(t, "Flour", stockErr.Shortfalls[0].Name)
	assert.True(t, stockErr.Shortfalls[0].Missing.Equal(decimal.NewFromInt(200)), "2*600 - 1000")

	assert.True(t, f.quantityOf(t, f.flour.ID).Equal(decimal.NewFromInt(1000)),
		"rejected run must never drive stock negative")
	assert.Empty(t, f.history.entries)
}

func TestProduceDuplicateRecipeLinesDeductOnce(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	dough := &model.Product{OwnerID: f.owner, Name: "Double Dough", Quantity: decimal.Zero, Unit: "pcs"}
	require.NoError(t, f.products.Create(ctx, dough))
	require.NoError(t, f.products.ReplaceRecipe(ctx, dough.ID, []model.RecipeItem{
		{ProductID: dough.ID, IngredientID: f.flour.ID, Amount: decimal.NewFromInt(300), Position: 0},
		{ProductID: dough.ID, IngredientID: f.flour.ID, Amount: decimal.NewFromInt(300), Position: 1},
	}))

	resp, err := f.svc.Produce(ctx, f.owner, dto.ProduceRequest{
		ProductID: dough.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	// One aggregated deduction of 600, not two of 600.
	assert.True(t, f.quantityOf(t, f.flour.ID).Equal(decimal.NewFromInt(400)))
	require.Len(t, resp.Consumed, 1)
	assert.True(t, resp.Consumed[0].Consumed.Equal(decimal.NewFromInt(600)))
	assert.True(t, resp.Consumed[0].Remaining.Equal(decimal.NewFromInt(400)))
}

func TestProduceOtherOwnersProductInvisible(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Produce(context.Background(), uuid.New(), dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestWriteOffIngredient(t *testing.T) {
	f := newStockFixture(t)

	resp, err := f.svc.WriteOff(context.Background(), f.owner, dto.WriteOffRequest{
		ItemType: dto.ItemIngredient,
		ItemID:   f.sugar.ID.String(),
		Quantity: decimal.NewFromInt(200),
		Reason:   "spilled",
	})
	require.NoError(t, err)

	assert.True(t, resp.NewQuantity.Equal(decimal.NewFromInt(300)))
	assert.True(t, f.quantityOf(t, f.sugar.ID).Equal(decimal.NewFromInt(300)))

	rows := f.history.ofType(f.owner, model.HistoryWriteoff)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Description, `"Sugar"`)
	assert.Contains(t, rows[0].Description, "spilled")
}

func TestWriteOffProduct(t *testing.T) {
	f := newStockFixture(t)
	_, err := f.svc.Produce(context.Background(), f.owner, dto.ProduceRequest{
		ProductID: f.bread.ID.String(),
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	resp, err := f.svc.WriteOff(context.Background(), f.owner, dto.WriteOffRequest{
		ItemType: dto.ItemProduct,
		ItemID:   f.bread.ID.String(),
		Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.Equal(decimal.NewFromInt(1)))
}

func TestWriteOffExceedingStockRejected(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.WriteOff(context.Background(), f.owner, dto.WriteOffRequest{
		ItemType: dto.ItemIngredient,
		ItemID:   f.sugar.ID.String(),
		Quantity: decimal.NewFromInt(501),
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 1)
	assert.True(t, stockErr.Shortfalls[0].Missing.Equal(decimal.NewFromInt(1)))
	assert.True(t, f.quantityOf(t, f.sugar.ID).Equal(decimal.NewFromInt(500)), "nothing written")
	assert.Empty(t, f.history.entries)
}

func TestWriteOffExactStockAllowed(t *testing.T) {
	f := newStockFixture(t)

	resp, err := f.svc.WriteOff(context.Background(), f.owner, dto.WriteOffRequest{
		ItemType: dto.ItemIngredient,
		ItemID:   f.sugar.ID.String(),
		Quantity: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.IsZero())
}

func TestWriteOffUnknownItemType(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.WriteOff(context.Background(), f.owner, dto.WriteOffRequest{
		ItemType: "recipe",
		ItemID:   f.sugar.ID.String(),
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &service.InsufficientStockError{Shortfalls: []service.Shortfall{
		{Name: "Flour", Missing: decimal.NewFromInt(200), Unit: "g"},
		{Name: "Sugar", Missing: decimal.NewFromInt(50), Unit: "g"},
	}}
	assert.Contains(t, err.Error(), `"Flour": 200 g missing`)
	assert.Contains(t, err.Error(), `"Sugar": 50 g missing`)

	var target *service.InsufficientStockError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, []string{`"Flour": 200 g missing`, `"Sugar": 50 g missing`}, err.ShortfallStrings())
}
