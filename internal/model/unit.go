package model

import "github.com/google/uuid"

// Unit is a measurement unit ("g", "kg", "pcs") owned by one profile.
// Ingredients and products reference units by NAME, not by id — deleting a
// unit does not touch items already using that name (weak reference).
type Unit struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_units_owner_name;not null"`
	Name    string    `gorm:"uniqueIndex:idx_units_owner_name;not null"`
}
