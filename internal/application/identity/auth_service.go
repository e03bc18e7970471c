package identity

import (
	"context"
	"errors"

	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/auth"
	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password so callers cannot tell which one failed
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Validate checks username and password and returns the user's identity
func (s *AuthService) Validate(ctx context.Context, username, password string) (*identity.Identity, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "validate", telemetry.SpanAttrUsername, username)
	defer span.End()

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load user for validation", zap.Error(err))
			telemetry.RecordError(span, err)
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	id := user.Identity()
	return &id, nil
}

// Login validates the credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	id, err := s.Validate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", id.Username),
		zap.Int64("user_id", id.ID))

	return &LoginResult{User: *id, Token: pair, Msg: "Logged in"}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token is revoked so it can be used only once.
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has expired")
		}
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid refresh token")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, err
	}
	if revoked {
		s.logger.Warn("Revoked refresh token presented", zap.Int64("user_id", claims.UserID))
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Refresh token has been revoked")
	}

	// spend the token before issuing a new pair
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "User no longer exists")
		}
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication tokens")
	}

	s.logger.Info("Token refreshed", zap.Int64("user_id", user.ID))
	return pair, nil
}

// Logout revokes the access token described by claims and, when given, the
// refresh token
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims, input LogoutRequest) error {
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return err
	}

	if input.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		switch {
		case err != nil:
			s.logger.Debug("Ignoring invalid refresh token on logout", zap.Error(err))
		case refresh.UserID != claims.UserID:
			s.logger.Warn("Refresh token on logout belongs to another user",
				zap.Int64("user_id", claims.UserID))
		default:
			if err := s.blacklist.Revoke(ctx, refresh.ID, refresh.RemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}
