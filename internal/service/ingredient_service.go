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

// IngredientService is the business logic contract for the raw-material ledger.
type IngredientService interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, req dto.UpsertIngredientRequest) (*dto.IngredientResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.IngredientFilter) (*dto.IngredientListResponse, error)
	AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, req dto.AdjustQuantityRequest) (*dto.IngredientResponse, error)
	Remove(ctx context.Context, ownerID, id uuid.UUID) error
}

type ingredientService struct {
	repo        repository.IngredientRepository
	profileRepo repository.ProfileRepository
	history     HistoryService
	cfg         *config.Config
}

func NewIngredientService(
	repo repository.IngredientRepository,
	profileRepo repository.ProfileRepository,
	history HistoryService,
	cfg *config.Config,
) IngredientService {
	return &ingredientService{repo: repo, profileRepo: profileRepo, history: history, cfg: cfg}
}

// resolveExisting finds the record an upsert should update: explicit id wins,
// then external_code, then case-insensitive name. A nil result means create.
func (s *ingredientService) resolveExisting(ctx context.Context, ownerID uuid.UUID, req dto.UpsertIngredientRequest) (*model.Ingredient, error) {
	if req.ID != nil {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ingredient id", ErrValidation)
		}
		ing, err := s.repo.FindByID(ctx, ownerID, id)
		if err != nil {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
		}
		return ing, nil
	}
	if req.ExternalCode != nil && *req.ExternalCode != "" {
		if ing, err := s.repo.FindByExternalCode(ctx, ownerID, *req.ExternalCode); err == nil {
			return ing, nil
		}
	}
	if ing, err := s.repo.FindByNameFold(ctx, ownerID, req.Name); err == nil {
		return ing, nil
	}
	return nil, nil
}

func (s *ingredientService) Upsert(ctx context.Context, ownerID uuid.UUID, req dto.UpsertIngredientRequest) (*dto.IngredientResponse, error) {
	if req.Quantity.IsNegative() || req.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and min_stock must not be negative", ErrValidation)
	}

	existing, err := s.resolveExisting(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		// Create path — enforce the owner's plan capacity first.
		if err := s.checkCapacity(ctx, ownerID); err != nil {
			return nil, err
		}
		ing := &model.Ingredient{
			OwnerID:      ownerID,
			Name:         req.Name,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			MinStock:     req.MinStock,
			PricePerUnit: req.PricePerUnit,
			ExternalCode: req.ExternalCode,
		}
		if err := s.repo.Create(ctx, ing); err != nil {
			return nil, err
		}
		s.logHistory(ctx, ownerID, model.HistoryCreation,
			fmt.Sprintf("Added ingredient %q: %s %s", ing.Name, ing.Quantity.String(), ing.Unit))
		return ingredientToResponse(ing), nil
	}

	// Update path — merge the quantity per mode, everything else replaces.
	switch req.Mode {
	case dto.MergeAccumulate:
		existing.Quantity = existing.Quantity.Add(req.Quantity)
	default:
		existing.Quantity = req.Quantity
	}
	existing.Name = req.Name
	existing.Unit = req.Unit
	existing.MinStock = req.MinStock
	if req.PricePerUnit != nil {
		existing.PricePerUnit = req.PricePerUnit
	}
	if req.ExternalCode != nil {
		existing.ExternalCode = req.ExternalCode
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.logHistory(ctx, ownerID, model.HistoryUpdate,
		fmt.Sprintf("Updated ingredient %q: %s %s", existing.Name, existing.Quantity.String(), existing.Unit))
	return ingredientToResponse(existing), nil
}

func (s *ingredientService) checkCapacity(ctx context.Context, ownerID uuid.UUID) error {
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
		return fmt.Errorf("%w: the %s plan allows at most %d ingredients", ErrLimitReached, profile.Plan, limit)
	}
	return nil
}

func (s *ingredientService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
	}
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) List(ctx context.Context, ownerID uuid.UUID, filter dto.IngredientFilter) (*dto.IngredientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ingredients, total, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.IngredientListResponse{
		Data:  make([]dto.IngredientResponse, 0, len(ingredients)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ingredients {
		resp.Data = append(resp.Data, *ingredientToResponse(&ingredients[i]))
	}
	return resp, nil
}

// AdjustQuantity sets an absolute quantity — used for manual stock count
// corrections and the +/- stepper.
func (s *ingredientService) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, req dto.AdjustQuantityRequest) (*dto.IngredientResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	ing, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
	}
	ing.Quantity = req.Quantity
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	s.logHistory(ctx, ownerID, model.HistoryUpdate,
		fmt.Sprintf("Set stock of %q to %s %s", ing.Name, ing.Quantity.String(), ing.Unit))
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	ing, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logHistory(ctx, ownerID, model.HistoryDeletion,
		fmt.Sprintf("Removed ingredient %q", ing.Name))
	return nil
}

// logHistory appends an audit entry for an already-committed mutation.
// Best-effort: an audit write failure must not fail the operation itself.
func (s *ingredientService) logHistory(ctx context.Context, ownerID uuid.UUID, entryType, description string) {
	_ = s.history.Append(ctx, ownerID, entryType, description)
}

func ingredientToResponse(ing *model.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           ing.ID.String(),
		Name:         ing.Name,
		Quantity:     ing.Quantity,
		Unit:         ing.Unit,
		MinStock:     ing.MinStock,
		PricePerUnit: ing.PricePerUnit,
		ExternalCode: ing.ExternalCode,
	}
}
