package auth

import (
	"github.com/omaralfarsi/fleetledger-backend/internal/users"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// LoginRequest carries the credentials posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token alongside the authenticated user.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// RegisterRequest carries the payload for provisioning a new operator
// account. Only admins may register accounts.
type RegisterRequest struct {
	Username string         `json:"username" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	FullName string         `json:"full_name"`
	Role     enums.UserRole `json:"role"`
}
