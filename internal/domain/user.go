package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered player. Passwords are stored only as bcrypt
// hashes; the core components never see credentials, only the user ID.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
