package service

import (
	"context"
	"fmt"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
)

// UnitService manages the per-owner measurement unit catalog. Items reference
// units by name, so removing a unit leaves items using that name untouched.
type UnitService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]dto.UnitResponse, error)
	Remove(ctx context.Context, ownerID, id uuid.UUID) error
}

type unitService struct {
	repo    repository.UnitRepository
	history HistoryService
}

func NewUnitService(repo repository.UnitRepository, history HistoryService) UnitService {
	return &unitService{repo: repo, history: history}
}

func (s *unitService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	u := &model.Unit{OwnerID: ownerID, Name: req.Name}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	_ = s.history.Append(ctx, ownerID, model.HistoryCreation, fmt.Sprintf("Added unit %q", u.Name))
	return &dto.UnitResponse{ID: u.ID.String(), Name: u.Name}, nil
}

func (s *unitService) List(ctx context.Context, ownerID uuid.UUID) ([]dto.UnitResponse, error) {
	units, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, dto.UnitResponse{ID: u.ID.String(), Name: u.Name})
	}
	return resp, nil
}

func (s *unitService) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("%w: unit %s", ErrNotFound, id)
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	_ = s.history.Append(ctx, ownerID, model.HistoryDeletion, fmt.Sprintf("Removed unit %q", u.Name))
	return nil
}
