package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan tiers. The plan decides how many ingredients/products an owner may create.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Profile is an owner account. Every ledger entity carries the profile's ID
// as owner_id and every query is scoped by it.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Plan         string    `gorm:"not null;default:'free'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
