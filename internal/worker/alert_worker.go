package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/unstopDD/sklad-sub000/internal/infra"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertWorker scans an owner's ingredients after a stock transaction and
// emails the owner when anything sits at or below its minimum threshold.
// Best-effort by design: production never waits on, or fails with, a scan.
type AlertWorker struct {
	ingredientRepo repository.IngredientRepository
	profileRepo    repository.ProfileRepository
	mailer         *infra.Mailer
}

func NewAlertWorker(
	ingredientRepo repository.IngredientRepository,
	profileRepo repository.ProfileRepository,
	mailer *infra.Mailer,
) *AlertWorker {
	return &AlertWorker{ingredientRepo: ingredientRepo, profileRepo: profileRepo, mailer: mailer}
}

func (w *AlertWorker) Process(ctx context.Context, payload AlertScanPayload) error {
	ownerID, err := uuid.Parse(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid owner id %q: %w", payload.OwnerID, err)
	}

	ingredients, err := w.ingredientRepo.ListAll(ctx, ownerID)
	if err != nil {
		return err
	}

	var lines []string
	for i := range ingredients {
		ing := &ingredients[i]
		if ing.Quantity.LessThanOrEqual(ing.MinStock) {
			lines = append(lines, fmt.Sprintf("  %s: %s %s (minimum %s)",
				ing.Name, ing.Quantity.String(), ing.Unit, ing.MinStock.String()))
		}
	}
	if len(lines) == 0 {
		return nil
	}

	profile, err := w.profileRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}

	body := "The following items are at or below their minimum stock level:\n\n" +
		strings.Join(lines, "\n") + "\n"
	if err := w.mailer.SendAlert(profile.Email, "Low stock alert", body); err != nil {
		return err
	}

	infra.AlertEmailsTotal.Inc()
	log.Info().Str("owner_id", payload.OwnerID).Int("items", len(lines)).Msg("low stock alert sent")
	return nil
}
