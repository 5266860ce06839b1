package model

import (
	"time"

	"github.com/google/uuid"
)

// History entry types. One entry is appended per successful mutating
// operation; failed operations never write history.
const (
	HistoryCreation   = "creation"
	HistoryUpdate     = "update"
	HistoryDeletion   = "deletion"
	HistoryProduction = "production"
	HistoryWriteoff   = "writeoff"
)

// HistoryEntry is an immutable audit record. Entries are only ever appended
// and bulk-cleared, never edited.
type HistoryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Date        time.Time `gorm:"index;not null"`
	Type        string    `gorm:"not null"`
	Description string    `gorm:"not null"`
}

// TableName overrides GORM's pluralization (history_entries → history).
func (HistoryEntry) TableName() string { return "history" }
