package handler

import (
	appidentity "github.com/boilerparts/backend/internal/application/identity"
	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler serves registration and the token lifecycle
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
	authService *appidentity.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService, authService *appidentity.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// Signup registers a user. A refused registration is not an error: it
// answers 200 with a warningMessage.
//
// POST /api/v1/users/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req appidentity.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.WarningMessage != "" {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// Login checks the credentials and issues a token pair
//
// POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new pair
//
// POST /api/v1/users/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Logout revokes the presented access token and, if sent, the refresh token
//
// POST /api/v1/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.LogoutRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"msg": "session has ended"})
}

// LoginCheck returns the identity carried by the access token
//
// GET /api/v1/users/login-check
func (h *UserHandler) LoginCheck(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, identity.Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	})
}
