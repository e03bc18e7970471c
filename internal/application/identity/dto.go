package identity

import (
	"time"

	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/infrastructure/auth"
)

// RegisterRequest is the sign-up body
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Password string `json:"password" binding:"required,max=72"`
}

// RegisterResult is either the created user or a warning explaining why no
// user was created. Exactly one of the fields is set.
type RegisterResult struct {
	User           *UserResponse `json:"user,omitempty"`
	WarningMessage string        `json:"warningMessage,omitempty"`
}

// UserResponse is a user in API responses. The password hash never leaves
// the service.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is returned after a successful login
type LoginResult struct {
	User  identity.Identity `json:"user"`
	Token *auth.TokenPair   `json:"token"`
	Msg   string            `json:"msg"`
}

// RefreshTokenRequest is the token refresh body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so it is revoked along
// with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
