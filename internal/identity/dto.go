package identity

import (
	"github.com/google/uuid"

	"github.com/greenbasket/farmmarket-backend/pkg/enums"
)

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries login credentials plus the portal role the client
// logged in through.
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	UserID uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Role   enums.UserRole `json:"role"`
	Token  string         `json:"token,omitempty"`
}
