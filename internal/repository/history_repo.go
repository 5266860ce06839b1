package repository

import (
	"context"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository is the data access contract for the audit log. Entries are
// append-only: there is no update path, only insert, scan and bulk clear.
type HistoryRepository interface {
	Create(ctx context.Context, e *model.HistoryEntry) error
	// CreateTx inserts an entry inside an open transaction so the audit row
	// commits or rolls back together with the stock mutation it records.
	CreateTx(tx *gorm.DB, e *model.HistoryEntry) error
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.HistoryEntry, error)
	ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]model.HistoryEntry, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) Create(ctx context.Context, e *model.HistoryEntry) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *historyRepo) CreateTx(tx *gorm.DB, e *model.HistoryEntry) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return tx.Create(e).Error
}

func (r *historyRepo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("date DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *historyRepo) ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := r.db.WithContext(ctx).Where("owner_id = ? AND date > ?", ownerID, since).
		Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *historyRepo) Clear(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.HistoryEntry{}).Error
}
