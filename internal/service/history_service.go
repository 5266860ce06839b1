package service

import (
	"context"
	"regexp"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
)

// MaxHistoryEntries caps what one listing call returns. The table itself is
// never truncated — the full audit trail stays server-side until Clear.
const MaxHistoryEntries = 100

// HistoryService exposes the append-only audit log.
type HistoryService interface {
	Append(ctx context.Context, ownerID uuid.UUID, entryType, description string) error
	List(ctx context.Context, ownerID uuid.UUID, filter dto.HistoryFilter) (*dto.HistoryListResponse, error)
	// Clear irreversibly deletes the owner's whole audit trail.
	Clear(ctx context.Context, ownerID uuid.UUID) error
	// ActiveItemNames returns the distinct item names mentioned by entries
	// newer than now-windowDays. Used as the recency signal for low-stock
	// classification.
	ActiveItemNames(ctx context.Context, ownerID uuid.UUID, windowDays int) (map[string]bool, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Append(ctx context.Context, ownerID uuid.UUID, entryType, description string) error {
	return s.repo.Create(ctx, &model.HistoryEntry{
		OwnerID:     ownerID,
		Date:        time.Now(),
		Type:        entryType,
		Description: description,
	})
}

func (s *historyService) List(ctx context.Context, ownerID uuid.UUID, filter dto.HistoryFilter) (*dto.HistoryListResponse, error) {
	limit := filter.Limit
	if limit < 1 || limit > MaxHistoryEntries {
		limit = MaxHistoryEntries
	}
	entries, err := s.repo.ListRecent(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.HistoryListResponse{Data: make([]dto.HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Data = append(resp.Data, dto.HistoryEntryResponse{
			ID:          e.ID.String(),
			Date:        e.Date.UTC().Format(time.RFC3339),
			Type:        e.Type,
			Description: e.Description,
		})
	}
	return resp, nil
}

func (s *historyService) Clear(ctx context.Context, ownerID uuid.UUID) error {
	return s.repo.Clear(ctx, ownerID)
}

// quotedName extracts the first double-quoted substring of a description.
// All descriptions written by this service quote the item name, e.g.
// `Produced 2 pcs of "Bread"`.
var quotedName = regexp.MustCompile(`"([^"]+)"`)

func (s *historyService) ActiveItemNames(ctx context.Context, ownerID uuid.UUID, windowDays int) (map[string]bool, error) {
	since := time.Now().AddDate(0, 0, -windowDays)
	entries, err := s.repo.ListSince(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}
	return ExtractItemNames(entries), nil
}

// ExtractItemNames derives the distinct set of item names from history
// descriptions. Entries without a quoted substring fall back to the raw
// description. This is a display heuristic, not an invariant.
func ExtractItemNames(entries []model.HistoryEntry) map[string]bool {
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if m := quotedName.FindStringSubmatch(e.Description); m != nil {
			names[m[1]] = true
		} else {
			names[e.Description] = true
		}
	}
	return names
}
