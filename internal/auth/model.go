package auth

import (
	"time"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// User is an application account. The password hash never leaves the
// package; DTOs expose everything else.
type User struct {
	ID               int64           `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Email            string          `json:"email" db:"email"`
	PasswordHash     string          `json:"-" db:"password_hash"`
	Role             shared.UserRole `json:"role" db:"role"`
	IsActive         bool            `json:"is_active" db:"is_active"`
	ResetToken       *string         `json:"-" db:"reset_token"`
	ResetTokenExpiry *time.Time      `json:"-" db:"reset_token_expiry"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}
