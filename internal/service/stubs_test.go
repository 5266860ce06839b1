package service_test

// Shared in-memory repository stubs. Services only depend on the repository
// interfaces, so the business rules are tested without a database. DB()
// returns nil, which makes the services run their transaction bodies
// directly.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("record not found")

// ── ProfileRepository ────────────────────────────────────────────────────────

type stubProfileRepo struct {
	byID    map[uuid.UUID]*model.Profile
	byEmail map[string]*model.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		byID:    make(map[uuid.UUID]*model.Profile),
		byEmail: make(map[string]*model.Profile),
	}
}

func (r *stubProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cloned := *p
	r.byID[p.ID] = &cloned
	r.byEmail[p.Email] = &cloned
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return nil, errStubNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *model.Profile) error {
	cloned := *p
	r.byID[p.ID] = &cloned
	r.byEmail[p.Email] = &cloned
	return nil
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)

// ── UnitRepository ───────────────────────────────────────────────────────────

type stubUnitRepo struct {
	units []model.Unit
}

func (r *stubUnitRepo) Create(_ context.Context, u *model.Unit) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.units = append(r.units, *u)
	return nil
}

func (r *stubUnitRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Unit, error) {
	for i := range r.units {
		if r.units[i].ID == id && r.units[i].OwnerID == ownerID {
			cloned := r.units[i]
			return &cloned, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUnitRepo) List(_ context.Context, ownerID uuid.UUID) ([]model.Unit, error) {
	var out []model.Unit
	for _, u := range r.units {
		if u.OwnerID == ownerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUnitRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i := range r.units {
		if r.units[i].ID == id && r.units[i].OwnerID == ownerID {
			r.units = append(r.units[:i], r.units[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

var _ repository.UnitRepository = (*stubUnitRepo)(nil)

// ── IngredientRepository ─────────────────────────────────────────────────────

// stubIngredientRepo keeps an ordered slice so listings are deterministic.
type stubIngredientRepo struct {
	items []*model.Ingredient
}

func (r *stubIngredientRepo) find(ownerID, id uuid.UUID) *model.Ingredient {
	for _, ing := range r.items {
		if ing.ID == id && ing.OwnerID == ownerID {
			return ing
		}
	}
	return nil
}

func (r *stubIngredientRepo) Create(_ context.Context, ing *model.Ingredient) error {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	ing.CreatedAt = time.Now()
	cloned := *ing
	r.items = append(r.items, &cloned)
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Ingredient, error) {
	if ing := r.find(ownerID, id); ing != nil {
		cloned := *ing
		return &cloned, nil
	}
	return nil, errStubNotFound
}

func (r *stubIngredientRepo) FindByExternalCode(_ context.Context, ownerID uuid.UUID, code string) (*model.Ingredient, error) {
	for _, ing := range r.items {
		if ing.OwnerID == ownerID && ing.ExternalCode != nil && *ing.ExternalCode == code {
			cloned := *ing
			return &cloned, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubIngredientRepo) FindByNameFold(_ context.Context, ownerID uuid.UUID, name string) (*model.Ingredient, error) {
	for _, ing := range r.items {
		if ing.OwnerID == ownerID && strings.EqualFold(ing.Name, name) {
			cloned := *ing
			return &cloned, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubIngredientRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var out []model.Ingredient
	for _, ing := range r.items {
		if ing.OwnerID != ownerID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(ing.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, *ing)
	}
	return out, int64(len(out)), nil
}

func (r *stubIngredientRepo) ListAll(_ context.Context, ownerID uuid.UUID) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, ing := range r.items {
		if ing.OwnerID == ownerID {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, ing *model.Ingredient) error {
	stored := r.find(ing.OwnerID, ing.ID)
	if stored == nil {
		return errStubNotFound
	}
	*stored = *ing
	return nil
}

func (r *stubIngredientRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, ing := range r.items {
		if ing.ID == id && ing.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubIngredientRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	for _, ing := range r.items {
		if ing.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubIngredientRepo) AddQuantityTx(_ *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error {
	stored := r.find(ownerID, id)
	if stored == nil {
		return errStubNotFound
	}
	stored.Quantity = stored.Quantity.Add(delta)
	return nil
}

func (r *stubIngredientRepo) DB() *gorm.DB { return nil }

var _ repository.IngredientRepository = (*stubIngredientRepo)(nil)

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	items []*model.Product
}

func (r *stubProductRepo) find(ownerID, id uuid.UUID) *model.Product {
	for _, p := range r.items {
		if p.ID == id && p.OwnerID == ownerID {
			return p
		}
	}
	return nil
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cloned := *p
	r.items = append(r.items, &cloned)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	if p := r.find(ownerID, id); p != nil {
		cloned := *p
		return &cloned, nil
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) FindByExternalCode(_ context.Context, ownerID uuid.UUID, code string) (*model.Product, error) {
	for _, p := range r.items {
		if p.OwnerID == ownerID && p.ExternalCode != nil && *p.ExternalCode == code {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) FindByNameFold(_ context.Context, ownerID uuid.UUID, name string) (*model.Product, error) {
	for _, p := range r.items {
		if p.OwnerID == ownerID && strings.EqualFold(p.Name, name) {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.items {
		if p.OwnerID != ownerID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.items {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	stored := r.find(p.OwnerID, p.ID)
	if stored == nil {
		return errStubNotFound
	}
	recipe := stored.Recipe
	*stored = *p
	stored.Recipe = recipe
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, p := range r.items {
		if p.ID == id && p.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubProductRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.items {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) ReplaceRecipe(_ context.Context, productID uuid.UUID, lines []model.RecipeItem) error {
	for _, p := range r.items {
		if p.ID == productID {
			p.Recipe = append([]model.RecipeItem(nil), lines...)
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubProductRepo) AddQuantityTx(_ *gorm.DB, ownerID, id uuid.UUID, delta decimal.Decimal) error {
	stored := r.find(ownerID, id)
	if stored == nil {
		return errStubNotFound
	}
	stored.Quantity = stored.Quantity.Add(delta)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── HistoryRepository ────────────────────────────────────────────────────────

type stubHistoryRepo struct {
	entries []model.HistoryEntry
}

func (r *stubHistoryRepo) Create(_ context.Context, e *model.HistoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, e *model.HistoryEntry) error {
	return r.Create(context.Background(), e)
}

func (r *stubHistoryRepo) ListRecent(_ context.Context, ownerID uuid.UUID, limit int) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].OwnerID == ownerID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) ListSince(_ context.Context, ownerID uuid.UUID, since time.Time) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID && e.Date.After(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) Clear(_ context.Context, ownerID uuid.UUID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.OwnerID != ownerID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// ofType counts the owner's entries with the given type.
func (r *stubHistoryRepo) ofType(ownerID uuid.UUID, entryType string) []model.HistoryEntry {
	var out []model.HistoryEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID && e.Type == entryType {
			out = append(out, e)
		}
	}
	return out
}

var _ repository.HistoryRepository = (*stubHistoryRepo)(nil)
