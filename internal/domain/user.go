package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity issued by the external auth provider, mirrored locally
// to carry the admin flag and own ledger rows.
type User struct {
	ID        uuid.UUID
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
