package auth

import "github.com/google/uuid"

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
