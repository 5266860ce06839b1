package service

import (
	"context"
	"fmt"

	"github.com/unstopDD/sklad-sub000/internal/config"
	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
)

// ProductService is the business logic contract for the finished-goods ledger.
type ProductService interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, req dto.UpsertProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Remove(ctx context.Context, ownerID, id uuid.UUID) error
}

type productService struct {
	repo           repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	profileRepo    repository.ProfileRepository
	history        HistoryService
	cfg            *config.Config
}

func NewProductService(
	repo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	profileRepo repository.ProfileRepository,
	history HistoryService,
	cfg *config.Config,
) ProductService {
	return &productService{
		repo:           repo,
		ingredientRepo: ingredientRepo,
		profileRepo:    profileRepo,
		history:        history,
		cfg:            cfg,
	}
}

func (s *productService) Upsert(ctx context.Context, ownerID uuid.UUID, req dto.UpsertProductRequest) (*dto.ProductResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	recipe, err := s.buildRecipe(ctx, ownerID, req.Recipe)
	if err != nil {
		return nil, err
	}

	existing, err := s.resolveExisting(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err := s.checkCapacity(ctx, ownerID); err != nil {
			return nil, err
		}
		p := &model.Product{
			OwnerID:      ownerID,
			Name:         req.Name,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			ExternalCode: req.ExternalCode,
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, err
		}
		for i := range recipe {
			recipe[i].ProductID = p.ID
		}
		if err := s.repo.ReplaceRecipe(ctx, p.ID, recipe); err != nil {
			return nil, err
		}
		p.Recipe = recipe
		s.logHistory(ctx, ownerID, model.HistoryCreation,
			fmt.Sprintf("Added product %q: %s %s", p.Name, p.Quantity.String(), p.Unit))
		return productToResponse(p), nil
	}

	switch req.Mode {
	case dto.MergeAccumulate:
		existing.Quantity = existing.Quantity.Add(req.Quantity)
	default:
		existing.Quantity = req.Quantity
	}
	existing.Name = req.Name
	existing.Unit = req.Unit
	if req.ExternalCode != nil {
		existing.ExternalCode = req.ExternalCode
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	// The recipe never merges line by line — the incoming list wins.
	for i := range recipe {
		recipe[i].ProductID = existing.ID
	}
	if err := s.repo.ReplaceRecipe(ctx, existing.ID, recipe); err != nil {
		return nil, err
	}
	existing.Recipe = recipe
	s.logHistory(ctx, ownerID, model.HistoryUpdate,
		fmt.Sprintf("Updated product %q: %s %s", existing.Name, existing.Quantity.String(), existing.Unit))
	return productToResponse(existing), nil
}

// buildRecipe validates every line references an ingredient the owner has.
// Duplicate ingredient lines are kept as-is and will double-count in
// production.
func (s *productService) buildRecipe(ctx context.Context, ownerID uuid.UUID, lines []dto.RecipeLineRequest) ([]model.RecipeItem, error) {
	recipe := make([]model.RecipeItem, 0, len(lines))
	for i, line := range lines {
		if !line.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: recipe line %d amount must be positive", ErrValidation, i+1)
		}
		ingID, err := uuid.Parse(line.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("%w: recipe line %d has an invalid ingredient id", ErrValidation, i+1)
		}
		if _, err := s.ingredientRepo.FindByID(ctx, ownerID, ingID); err != nil {
			return nil, fmt.Errorf("%w: recipe ingredient %s", ErrNotFound, ingID)
		}
		recipe = append(recipe, model.RecipeItem{
			IngredientID: ingID,
			Amount:       line.Amount,
			Position:     i,
		})
	}
	return recipe, nil
}

func (s *productService) resolveExisting(ctx context.Context, ownerID uuid.UUID, req dto.UpsertProductRequest) (*model.Product, error) {
	if req.ID != nil {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
		}
		p, err := s.repo.FindByID(ctx, ownerID, id)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return p, nil
	}
	if req.ExternalCode != nil && *req.ExternalCode != "" {
		if p, err := s.repo.FindByExternalCode(ctx, ownerID, *req.ExternalCode); err == nil {
			return p, nil
		}
	}
	if p, err := s.repo.FindByNameFold(ctx, ownerID, req.Name); err == nil {
		return p, nil
	}
	return nil, nil
}

func (s *productService) checkCapacity(ctx context.Context, ownerID uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	limit := s.cfg.ItemLimit(profile.Plan)
	if count >= int64(limit) {
		return fmt.Errorf("%w: the %s plan allows at most %d products", ErrLimitReached, profile.Plan, limit)
	}
	return nil
}

func (s *productService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, *productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logHistory(ctx, ownerID, model.HistoryDeletion,
		fmt.Sprintf("Removed product %q", p.Name))
	return nil
}

func (s *productService) logHistory(ctx context.Context, ownerID uuid.UUID, entryType, description string) {
	_ = s.history.Append(ctx, ownerID, entryType, description)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	recipe := make([]dto.RecipeLineResponse, 0, len(p.Recipe))
	for _, line := range p.Recipe {
		recipe = append(recipe, dto.RecipeLineResponse{
			IngredientID: line.IngredientID.String(),
			Amount:       line.Amount,
		})
	}
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		ExternalCode: p.ExternalCode,
		Recipe:       recipe,
	}
}
